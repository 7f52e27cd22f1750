package tenant

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrUnresolvable = errors.New("tenant not resolvable from request")

// ReservedSlugs are path/subdomain segments that can never address a tenant.
var ReservedSlugs = map[string]bool{
	"admin": true, "www": true, "api": true, "app": true, "mail": true,
	"ftp": true, "localhost": true, "test": true, "staging": true, "dev": true,
}

type RefKind string

const (
	// RefExternal is a UUID-shaped external reference id.
	RefExternal RefKind = "external_ref"
	// RefSlug is a path-prefix slug.
	RefSlug RefKind = "slug"
	// RefSubdomain is the {tenant}.{baseDomain} host form.
	RefSubdomain RefKind = "subdomain"
)

// Ref is the addressing handle a request carries before the tenant row is
// loaded. Three independent addressing schemes coexist in the URL space;
// DeriveRef tries them in a fixed priority order.
type Ref struct {
	Kind  RefKind
	Value string
}

// DeriveRef resolves a tenant handle from request parts, in order:
//  1. an explicit external-reference header or UUID-shaped path segment,
//  2. a path-prefix slug,
//  3. a subdomain of the configured base domain.
//
// Reserved slugs and unmatched requests yield ErrUnresolvable.
func DeriveRef(host, headerRef, pathSegment, baseDomain string) (Ref, error) {
	if headerRef != "" {
		if _, err := uuid.Parse(headerRef); err == nil {
			return Ref{Kind: RefExternal, Value: headerRef}, nil
		}
		return Ref{}, ErrUnresolvable
	}

	if pathSegment != "" {
		if _, err := uuid.Parse(pathSegment); err == nil {
			return Ref{Kind: RefExternal, Value: pathSegment}, nil
		}
		slug := strings.ToLower(pathSegment)
		if ReservedSlugs[slug] {
			return Ref{}, ErrUnresolvable
		}
		return Ref{Kind: RefSlug, Value: slug}, nil
	}

	if sub := subdomainOf(host, baseDomain); sub != "" {
		if ReservedSlugs[sub] {
			return Ref{}, ErrUnresolvable
		}
		return Ref{Kind: RefSubdomain, Value: sub}, nil
	}

	return Ref{}, ErrUnresolvable
}

func subdomainOf(host, baseDomain string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	baseDomain = strings.ToLower(baseDomain)
	if baseDomain == "" || !strings.HasSuffix(host, "."+baseDomain) {
		return ""
	}
	sub := strings.TrimSuffix(host, "."+baseDomain)
	if sub == "" || strings.Contains(sub, ".") {
		return ""
	}
	return sub
}

type ctxKey string

const restaurantKey ctxKey = "TABLEBOOK_TENANT"

// WithRestaurant returns a derived context carrying the resolved tenant.
func WithRestaurant(ctx context.Context, r *Restaurant) context.Context {
	return context.WithValue(ctx, restaurantKey, r)
}

// FromContext extracts the resolved tenant and a presence flag.
func FromContext(ctx context.Context) (*Restaurant, bool) {
	v := ctx.Value(restaurantKey)
	if v == nil {
		return nil, false
	}
	r, ok := v.(*Restaurant)
	return r, ok
}
