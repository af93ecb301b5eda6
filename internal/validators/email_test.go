package validators

import (
	"context"
	"testing"
)

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	for _, email := range []string{"", "sem-arroba", "fim@"} {
		if IsEmailDomainValid(context.Background(), email) {
			t.Errorf("IsEmailDomainValid(%q) = true, want false", email)
		}
	}
}
