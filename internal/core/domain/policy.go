package domain

import "strings"

// Policy is the cost/payment rule attached to a service name.
// Cost is in paise. When RequiresPayment is false the stored cost is
// irrelevant for debiting; nothing is charged.
type Policy struct {
	Service         string `json:"service"`
	Cost            int64  `json:"cost"`
	RequiresPayment bool   `json:"requires_payment"`
}

// PolicySet is an immutable collection of policies, used as the hardcoded
// fallback when the policy store is unreachable.
type PolicySet []Policy

// Lookup returns the policy for a service name, or nil when unknown.
// Matching is case-insensitive.
func (ps PolicySet) Lookup(service string) *Policy {
	name := NormalizeService(service)
	for i := range ps {
		if ps[i].Service == name {
			p := ps[i]
			return &p
		}
	}
	return nil
}

// DefaultPolicySet returns the fixed default policies substituted when the
// backing store is unreachable. Stale but available beats hard-failing the
// gate on a storage blip.
func DefaultPolicySet() PolicySet {
	return PolicySet{
		{Service: "attendance", Cost: 0, RequiresPayment: false},
		{Service: "library", Cost: 0, RequiresPayment: false},
		{Service: "mess", Cost: 5000, RequiresPayment: true},
		{Service: "transport", Cost: 2000, RequiresPayment: true},
	}
}

// NormalizeService canonicalizes a service name for lookups and storage.
func NormalizeService(service string) string {
	return strings.ToLower(strings.TrimSpace(service))
}

// DisplayService formats a service name for user-facing responses.
func DisplayService(service string) string {
	s := strings.TrimSpace(service)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
