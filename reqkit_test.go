package reqkit_test

import (
	"errors"
	"testing"

	"github.com/adamwoolhether/reqkit"
	"github.com/adamwoolhether/reqkit/client"
	"github.com/adamwoolhether/reqkit/client/throttle"
)

func TestNewClientFromEnv(t *testing.T) {
	testCases := map[string]struct {
		env map[string]string
		err error
	}{
		"empty": {},
		"full": {
			env: map[string]string{
				"SVC_TIMEOUT":        "2s",
				"SVC_USER_AGENT":     "svc/1.0",
				"SVC_THROTTLE_RPS":   "5",
				"SVC_THROTTLE_BURST": "1",
			},
		},
		"halfThrottle": {
			env: map[string]string{"SVC_THROTTLE_BURST": "3"},
			err: throttle.ErrMustNotBeZero,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			c, err := reqkit.NewClientFromEnv("SVC", client.WithNoFollowRedirects())
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got: %v", tc.err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if c == nil {
				t.Fatal("expected client")
			}
		})
	}
}

func TestNewClientFromEnv_Malformed(t *testing.T) {
	t.Setenv("SVC_THROTTLE_RPS", "fast")

	if _, err := reqkit.NewClientFromEnv("SVC"); err == nil {
		t.Fatal("expected error for malformed env value")
	}
}
