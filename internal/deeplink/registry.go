// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package deeplink maps cap:// URLs to capture actions and forwards them to
// the session controller.
package deeplink

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

// Scheme is the fixed prefix every deeplink URL carries.
const Scheme = "cap://"

// ErrConfiguration classifies every registry validation failure.
var ErrConfiguration = errors.New("invalid action registry")

// ConfigurationError reports a malformed registry entry.
type ConfigurationError struct {
	Action model.Action
	URL    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Action == model.ActionUnknown {
		return fmt.Sprintf("action registry: %s", e.Reason)
	}
	return fmt.Sprintf("action registry: %s (%q): %s", e.Action, e.URL, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// DefaultURLs returns the canonical URL for every action.
func DefaultURLs() map[model.Action]string {
	return map[model.Action]string{
		model.ActionStartRecording:  Scheme + "start-recording",
		model.ActionStopRecording:   Scheme + "stop-recording",
		model.ActionPauseRecording:  Scheme + "pause-recording",
		model.ActionResumeRecording: Scheme + "resume-recording",
		model.ActionSwitchMic:       Scheme + "switch-mic",
		model.ActionSwitchCamera:    Scheme + "switch-camera",
	}
}

// Entry is one registry row.
type Entry struct {
	Action model.Action `json:"action"`
	URL    string       `json:"url"`
}

// Registry is an immutable Action <-> URL mapping. It is safe for concurrent
// use because nothing mutates it after NewRegistry returns.
type Registry struct {
	byAction map[model.Action]string
	byURL    map[string]model.Action
}

// NewRegistry validates urls and builds a registry. It requires exactly one
// non-empty cap:// URL per action and no URL shared between actions.
func NewRegistry(urls map[model.Action]string) (*Registry, error) {
	r := &Registry{
		byAction: make(map[model.Action]string, len(urls)),
		byURL:    make(map[string]model.Action, len(urls)),
	}

	// Deterministic order keeps the reported error stable.
	actions := make([]model.Action, 0, len(urls))
	for a := range urls {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	for _, a := range actions {
		url := urls[a]
		if !a.Valid() {
			return nil, &ConfigurationError{Action: a, URL: url, Reason: "unknown action"}
		}
		if url == "" {
			return nil, &ConfigurationError{Action: a, URL: url, Reason: "empty url"}
		}
		if !strings.HasPrefix(url, Scheme) || len(url) == len(Scheme) {
			return nil, &ConfigurationError{Action: a, URL: url, Reason: "url must start with " + Scheme + " and name an action"}
		}
		if other, dup := r.byURL[url]; dup {
			return nil, &ConfigurationError{Action: a, URL: url, Reason: "url already mapped to " + other.String()}
		}
		r.byAction[a] = url
		r.byURL[url] = a
	}

	for _, a := range model.AllActions() {
		if _, ok := r.byAction[a]; !ok {
			return nil, &ConfigurationError{Action: a, Reason: "missing url"}
		}
	}
	return r, nil
}

// DefaultRegistry returns the canonical six-entry registry.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultURLs())
	if err != nil {
		panic(fmt.Sprintf("deeplink: default registry invalid: %v", err))
	}
	return r
}

// Resolve returns the action mapped to url. Matching is exact and case-sensitive.
func (r *Registry) Resolve(url string) (model.Action, bool) {
	a, ok := r.byURL[url]
	return a, ok
}

// URLFor returns the canonical URL of an action.
func (r *Registry) URLFor(a model.Action) (string, bool) {
	url, ok := r.byAction[a]
	return url, ok
}

// Actions returns the registered actions in declaration order.
func (r *Registry) Actions() []model.Action {
	out := make([]model.Action, 0, len(r.byAction))
	for _, a := range model.AllActions() {
		if _, ok := r.byAction[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Entries returns the registry rows in declaration order.
func (r *Registry) Entries() []Entry {
	actions := r.Actions()
	out := make([]Entry, len(actions))
	for i, a := range actions {
		out[i] = Entry{Action: a, URL: r.byAction[a]}
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.byAction) }
