// Package endpoint assembles absolute URLs from an ordered list of typed
// components.
//
// # Declaring Components
//
// A [Builder] can be created from a declarative list:
//
//	b := endpoint.New(
//		endpoint.Scheme("https"),
//		endpoint.Host("api.example.com"),
//		endpoint.Path("v1"),
//		endpoint.Path("users"),
//		endpoint.QueryItem("page", "2"),
//	)
//
// or with chained calls, which append the same components:
//
//	b := endpoint.New().
//		Scheme("https").
//		Host("api.example.com").
//		Path("v1").
//		Path("users").
//		QueryItem("page", "2")
//
// # Resolving
//
// [Builder.Build] returns the resolved *url.URL, or nil when the components
// cannot form an absolute URL. [Builder.Resolve] returns the reason:
//
//	u := b.Build() // https://api.example.com/v1/users?page=2
package endpoint
