// Package projects manages analyzed sites: URL validation, business
// categories, and a file-backed store keyed by project ID.
package projects

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BusinessCategories are the recognized categories, used for validation
// and to tailor category-aware prompt templates.
var BusinessCategories = []string{
	"e-commerce",
	"saas",
	"local-services",
	"healthcare",
	"finance",
	"education",
	"real-estate",
	"travel-hospitality",
	"professional-services",
	"manufacturing",
	"other",
}

// IsValidBusinessCategory reports whether category is recognized.
func IsValidBusinessCategory(category string) bool {
	for _, c := range BusinessCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Project is one site registered for analysis.
type Project struct {
	ID               string    `json:"project_id"`
	SiteURL          string    `json:"site_url"`
	BusinessCategory string    `json:"business_category,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ErrInvalidURL wraps all site URL validation failures.
var ErrInvalidURL = errors.New("invalid site URL")

var (
	bareProtocolPattern = regexp.MustCompile(`^https?://$`)
	singleWordPattern   = regexp.MustCompile(`^[a-zA-Z]+$`)
	domainPattern       = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?$`)
)

// NormalizeSiteURL validates a user-supplied site URL and returns the
// canonical form, prepending https:// when the protocol is missing.
func NormalizeSiteURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}

	switch {
	case bareProtocolPattern.MatchString(raw):
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	case singleWordPattern.MatchString(raw):
		return "", fmt.Errorf("%w: %q is not a domain", ErrInvalidURL, raw)
	case strings.Contains(raw, ".."):
		return "", fmt.Errorf("%w: %q contains consecutive dots", ErrInvalidURL, raw)
	case strings.HasPrefix(raw, "ftp://"):
		return "", fmt.Errorf("%w: only http and https are supported", ErrInvalidURL)
	}

	normalized := raw
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" || parsed.Scheme == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	domain := strings.ToLower(parsed.Hostname())
	if domain != "localhost" && !strings.Contains(domain, ".") {
		return "", fmt.Errorf("%w: domain %q has no dot", ErrInvalidURL, domain)
	}
	if !domainPattern.MatchString(domain) {
		return "", fmt.Errorf("%w: domain %q has invalid characters", ErrInvalidURL, domain)
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return "", fmt.Errorf("%w: domain %q has an empty label", ErrInvalidURL, domain)
		}
	}

	return normalized, nil
}

// New validates inputs and builds a Project with a fresh ID.
func New(siteURL, businessCategory string) (*Project, error) {
	normalized, err := NormalizeSiteURL(siteURL)
	if err != nil {
		return nil, err
	}

	if businessCategory != "" && !IsValidBusinessCategory(businessCategory) {
		return nil, fmt.Errorf("invalid business category %q, must be one of: %s",
			businessCategory, strings.Join(BusinessCategories, ", "))
	}

	return &Project{
		ID:               uuid.NewString(),
		SiteURL:          normalized,
		BusinessCategory: businessCategory,
		CreatedAt:        time.Now().UTC(),
	}, nil
}
