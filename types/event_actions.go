// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// EventActions represents the actions attached to an event.
type EventActions struct {
	// SkipSummarization if true, it won't call model to summarize function response.
	//
	// Only used for functionResponse event.
	SkipSummarization bool

	// StateDelta indicates that the event is updating the state with the given delta.
	StateDelta map[string]any

	// ArtifactDelta indicates that the event is updating an artifact. key is the filename, value is the version.
	ArtifactDelta map[string]int

	// TransferToAgent if set, the event transfers to the specified agent.
	TransferToAgent string

	// Escalate is the agent is escalating to a higher level agent.
	Escalate bool
}

// WithSkipSummarization configures the skipSummarization to the [EventActions].
func (ea *EventActions) WithSkipSummarization(skipSummarization bool) *EventActions {
	ea.SkipSummarization = skipSummarization
	return ea
}

// WithTransferToAgent configures the transferToAgent to the [EventActions].
func (ea *EventActions) WithTransferToAgent(transferToAgent string) *EventActions {
	ea.TransferToAgent = transferToAgent
	return ea
}

// Merge folds other into ea. Later values win.
func (ea *EventActions) Merge(other *EventActions) {
	if other == nil {
		return
	}
	ea.SkipSummarization = ea.SkipSummarization || other.SkipSummarization
	ea.Escalate = ea.Escalate || other.Escalate
	if other.TransferToAgent != "" {
		ea.TransferToAgent = other.TransferToAgent
	}
	if ea.StateDelta == nil {
		ea.StateDelta = make(map[string]any, len(other.StateDelta))
	}
	if ea.ArtifactDelta == nil {
		ea.ArtifactDelta = make(map[string]int, len(other.ArtifactDelta))
	}
	for k, v := range other.StateDelta {
		ea.StateDelta[k] = v
	}
	for k, v := range other.ArtifactDelta {
		ea.ArtifactDelta[k] = v
	}
}

// NewEventActions creates a new [EventActions] instance with default values.
func NewEventActions() *EventActions {
	return &EventActions{
		StateDelta:    make(map[string]any),
		ArtifactDelta: make(map[string]int),
	}
}
