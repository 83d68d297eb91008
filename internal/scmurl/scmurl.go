package scmurl

import (
	"strings"

	"github.com/yungbote/buildstore-backend/internal/domain/scm"
)

// Normalize reduces a repository URL to a bare host/path string so URLs that
// differ only in scheme or trivial suffixes compare equal: everything up to
// and including the first "://" is dropped, then a trailing ".git", then a
// trailing "/". Comparison over the result is case-sensitive.
func Normalize(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		url = url[i+3:]
	}
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, ".git")
	url = strings.TrimSuffix(url, "/")
	return url
}

// Predicate decides whether a repository configuration matches. Predicates
// compose conjunctively via And.
type Predicate func(rc *scm.RepositoryConfiguration) bool

// SearchByScmURL matches when the normalized query is a substring of the
// normalized internal URL or of the normalized external URL. This is the only
// predicate that checks both fields.
func SearchByScmURL(query string) Predicate {
	q := Normalize(query)
	return func(rc *scm.RepositoryConfiguration) bool {
		if strings.Contains(Normalize(rc.InternalURL), q) {
			return true
		}
		return rc.ExternalURL != "" && strings.Contains(Normalize(rc.ExternalURL), q)
	}
}

// WithExactInternalScmRepoURL matches when the normalized query equals the
// normalized internal URL.
func WithExactInternalScmRepoURL(url string) Predicate {
	q := Normalize(url)
	return func(rc *scm.RepositoryConfiguration) bool {
		return Normalize(rc.InternalURL) == q
	}
}

// WithExactExternalScmRepoURL matches when the normalized query equals the
// normalized external URL.
func WithExactExternalScmRepoURL(url string) Predicate {
	q := Normalize(url)
	return func(rc *scm.RepositoryConfiguration) bool {
		return rc.ExternalURL != "" && Normalize(rc.ExternalURL) == q
	}
}

// WithInternalScmRepoURL matches when the normalized partial is a substring
// of the normalized internal URL. The external URL is never consulted.
func WithInternalScmRepoURL(partial string) Predicate {
	q := Normalize(partial)
	return func(rc *scm.RepositoryConfiguration) bool {
		return strings.Contains(Normalize(rc.InternalURL), q)
	}
}

// WithExternalScmRepoURL matches when the normalized partial is a substring
// of the normalized external URL. The internal URL is never consulted.
func WithExternalScmRepoURL(partial string) Predicate {
	q := Normalize(partial)
	return func(rc *scm.RepositoryConfiguration) bool {
		return rc.ExternalURL != "" && strings.Contains(Normalize(rc.ExternalURL), q)
	}
}

// And composes predicates with AND semantics. With no predicates it matches
// everything.
func And(preds ...Predicate) Predicate {
	return func(rc *scm.RepositoryConfiguration) bool {
		for _, p := range preds {
			if !p(rc) {
				return false
			}
		}
		return true
	}
}
