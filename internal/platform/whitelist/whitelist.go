// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package whitelist restricts which attributes a PATCH request may change.

Each updatable resource owns one [Policy]. Three shapes exist and they are
intentionally different:

  - Strict: any key outside the allowed set rejects the whole update.
  - Lenient: keys outside the allowed set are dropped; the rest apply.
  - Open: every key passes through to the resource.

The policy only filters keys. Decoding the surviving values into a typed
patch and applying it is up to the owning service.
*/
package whitelist

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
)

// Mode selects how a [Policy] treats keys outside its allowed set.
type Mode int

const (
	// ModeStrict rejects the update if any key is not allowed.
	ModeStrict Mode = iota
	// ModeLenient silently drops keys that are not allowed.
	ModeLenient
	// ModeOpen lets every key through.
	ModeOpen
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	case ModeOpen:
		return "open"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Fields is a decoded JSON object body, keyed by attribute name.
type Fields map[string]json.RawMessage

// Keys returns the attribute names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the body named key.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Decode unmarshals the fields into target, typically a struct of pointers
// so that absent keys stay nil.
func (f Fields) Decode(target any) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("whitelist: re-encode fields: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return apperr.ValidationError("Invalid field value").WithCause(err)
	}
	return nil
}

// Policy is the set of attributes an update endpoint may mutate.
type Policy struct {
	mode    Mode
	allowed map[string]struct{}
}

// Strict builds a policy that rejects updates naming any key outside keys.
func Strict(keys ...string) Policy {
	return newPolicy(ModeStrict, keys)
}

// Lenient builds a policy that keeps only keys and drops the rest.
func Lenient(keys ...string) Policy {
	return newPolicy(ModeLenient, keys)
}

// Open builds a policy that applies no filtering at all.
func Open() Policy {
	return Policy{mode: ModeOpen}
}

func newPolicy(mode Mode, keys []string) Policy {
	allowed := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		allowed[key] = struct{}{}
	}
	return Policy{mode: mode, allowed: allowed}
}

// Mode reports the policy's filtering mode.
func (p Policy) Mode() Mode { return p.mode }

// Allows reports whether key may be updated under this policy.
func (p Policy) Allows(key string) bool {
	if p.mode == ModeOpen {
		return true
	}
	_, ok := p.allowed[key]
	return ok
}

// Apply filters requested against the policy.
//
// Strict policies return [apperr.InvalidUpdate] listing every rejected key and
// apply nothing. The returned map is always a new value; requested is not modified.
func (p Policy) Apply(requested Fields) (Fields, error) {
	permitted := make(Fields, len(requested))
	var rejected []string

	for _, key := range requested.Keys() {
		if p.Allows(key) {
			permitted[key] = requested[key]
			continue
		}
		rejected = append(rejected, key)
	}

	if p.mode == ModeStrict && len(rejected) > 0 {
		return nil, apperr.InvalidUpdate(rejected...)
	}

	return permitted, nil
}
