package source

import (
	"context"
	"fmt"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func TestKind_ClassifiesWrappedErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "credential", err: fmt.Errorf("fixtures: %w", ErrMissingCredential), want: "missing_credential"},
		{name: "shape", err: crerr.Wrap(ErrInvalidShape, "decode odds"), want: "invalid_shape"},
		{name: "joined transport", err: fmt.Errorf("%w: %w", ErrTransport, context.DeadlineExceeded), want: "transport"},
		{name: "model", err: crerr.Wrapf(ErrModelOutput, "candidate %d", 0), want: "model_output"},
		{name: "other", err: context.Canceled, want: "unknown"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Kind(tc.err); got != tc.want {
				t.Fatalf("unexpected kind: got=%q want=%q", got, tc.want)
			}
		})
	}
}
