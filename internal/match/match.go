// Package match pairs live containers with persisted shortcuts across
// restarts and replica rescales. It is pure: given the same two input lists
// it produces the same result and performs no I/O.
package match

import (
	"github.com/zorak1103/porthall/internal/docker"
	"github.com/zorak1103/porthall/internal/names"
	"github.com/zorak1103/porthall/internal/store"
)

// Strategy identifies which rule paired a container with a shortcut.
type Strategy int

// Strategies in decreasing strictness. Applied in order; first match wins.
const (
	StrategyRuntimeID Strategy = iota + 1 // last-known container ID still live
	StrategyMatchKey                      // normalized base names equal
	StrategyImageName                     // legacy records keyed by image name
)

// String returns a human-readable strategy name for logging.
func (s Strategy) String() string {
	switch s {
	case StrategyRuntimeID:
		return "runtime-id"
	case StrategyMatchKey:
		return "match-key"
	case StrategyImageName:
		return "image-name"
	default:
		return "unknown"
	}
}

// Pair is one matched (container, shortcut) couple, with the identity
// correction the caller should persist, if any.
type Pair struct {
	Container  docker.Container
	Shortcut   *store.Shortcut
	Strategy   Strategy
	Correction *store.LinkCorrection // nil when the stored identity is already current
}

// Result is the outcome of one reconciliation computation.
type Result struct {
	Pairs []Pair
	// UnmatchedContainers are candidates for new-shortcut creation.
	UnmatchedContainers []docker.Container
	// AmbiguousContainers reduced to a match key already claimed in this
	// pass (by a pair or an earlier unmatched container). They are left
	// alone rather than created, so the next pass cannot produce duplicate
	// shortcuts for one key.
	AmbiguousContainers []docker.Container
}

// Reconcile pairs containers with container-linked shortcuts. Shortcuts
// without a container link are ignored entirely; unmatched shortcuts keep
// their stored identity untouched.
func Reconcile(containers []docker.Container, shortcuts []*store.Shortcut) Result {
	linked := make([]*store.Shortcut, 0, len(shortcuts))
	for _, sc := range shortcuts {
		if sc.Container != nil {
			linked = append(linked, sc)
		}
	}

	taken := make([]bool, len(containers))
	matched := make(map[int64]bool, len(linked))
	var pairs []Pair

	strategies := []struct {
		strategy Strategy
		match    func(sc *store.Shortcut, ctr docker.Container) bool
	}{
		{StrategyRuntimeID, func(sc *store.Shortcut, ctr docker.Container) bool {
			return sc.Container.RuntimeID != "" && sc.Container.RuntimeID == ctr.ID
		}},
		{StrategyMatchKey, func(sc *store.Shortcut, ctr docker.Container) bool {
			return matchKey(sc) == names.BaseName(ctr.Name)
		}},
		{StrategyImageName, func(sc *store.Shortcut, ctr docker.Container) bool {
			image := names.ImageShortName(ctr.Image)
			return image != "" && image != names.BaseName(ctr.Name) && matchKey(sc) == image
		}},
	}

	for _, st := range strategies {
		for _, sc := range linked {
			if matched[sc.ID] {
				continue
			}
			// First untaken container in inventory order wins; a second
			// container with the same key stays unmatched by design.
			for i, ctr := range containers {
				if taken[i] || !st.match(sc, ctr) {
					continue
				}
				taken[i] = true
				matched[sc.ID] = true
				pairs = append(pairs, Pair{
					Container:  ctr,
					Shortcut:   sc,
					Strategy:   st.strategy,
					Correction: correction(sc, ctr),
				})
				break
			}
		}
	}

	result := Result{Pairs: pairs}
	claimedKeys := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		claimedKeys[names.BaseName(p.Container.Name)] = true
	}

	for i, ctr := range containers {
		if taken[i] {
			continue
		}
		key := names.BaseName(ctr.Name)
		if claimedKeys[key] {
			result.AmbiguousContainers = append(result.AmbiguousContainers, ctr)
			continue
		}
		claimedKeys[key] = true
		result.UnmatchedContainers = append(result.UnmatchedContainers, ctr)
	}

	return result
}

// matchKey derives the comparison key for a shortcut: the stored match name
// when present, otherwise the stored container name, both normalized.
func matchKey(sc *store.Shortcut) string {
	if sc.Container.MatchName != "" {
		return names.BaseName(sc.Container.MatchName)
	}
	return names.BaseName(sc.Container.Name)
}

// correction computes what the stored identity should become. Matching by
// image name migrates the record onto the container-derived match key, so
// the legacy strategy retires itself record by record.
func correction(sc *store.Shortcut, ctr docker.Container) *store.LinkCorrection {
	base := names.BaseName(ctr.Name)

	c := store.LinkCorrection{
		ShortcutID:    sc.ID,
		RuntimeID:     ctr.ID,
		ContainerName: base,
		MatchName:     base,
	}
	if port := ctr.FirstPublicPort(); port > 0 && port != sc.Port {
		c.Port = port
	}

	if c.RuntimeID == sc.Container.RuntimeID &&
		c.ContainerName == sc.Container.Name &&
		c.MatchName == sc.Container.MatchName &&
		c.Port == 0 {
		return nil
	}
	return &c
}
