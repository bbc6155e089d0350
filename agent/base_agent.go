// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"fmt"
	"unicode"

	"github.com/go-a2a/design-studio/types"
)

// baseAgent holds the agent tree bookkeeping shared by agent implementations.
type baseAgent struct {
	self        types.Agent
	name        string
	description string
	parentAgent types.Agent
	subAgents   []types.Agent
}

// parented is implemented by agents whose parent is assigned when they are
// attached to another agent.
type parented interface {
	types.Agent
	setParentAgent(parent types.Agent) error
}

func validateName(name string) error {
	if name == "user" {
		return fmt.Errorf("agent name cannot be %q: it is reserved for end-user's input", name)
	}
	if !isIdentifier(name) {
		return fmt.Errorf("agent name %q must be a valid identifier", name)
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// attach makes subAgents children of b.
func (b *baseAgent) attach(subAgents ...types.Agent) error {
	seen := make(map[string]bool, len(b.subAgents))
	for _, sub := range b.subAgents {
		seen[sub.Name()] = true
	}

	for _, sub := range subAgents {
		if seen[sub.Name()] || sub.Name() == b.name {
			return fmt.Errorf("agent %s: duplicate sub-agent name %s", b.name, sub.Name())
		}
		seen[sub.Name()] = true

		p, ok := sub.(parented)
		if !ok {
			return fmt.Errorf("agent %s: sub-agent %s cannot be attached", b.name, sub.Name())
		}
		if err := p.setParentAgent(b.self); err != nil {
			return err
		}
		b.subAgents = append(b.subAgents, sub)
	}
	return nil
}

func (b *baseAgent) setParentAgent(parent types.Agent) error {
	if b.parentAgent != nil {
		return fmt.Errorf("agent %s already has a parent agent, current parent: %s, trying to add: %s", b.name, b.parentAgent.Name(), parent.Name())
	}
	b.parentAgent = parent
	return nil
}

// Name implements [types.Agent].
func (b *baseAgent) Name() string {
	return b.name
}

// Description implements [types.Agent].
func (b *baseAgent) Description() string {
	return b.description
}

// ParentAgent implements [types.Agent].
func (b *baseAgent) ParentAgent() types.Agent {
	return b.parentAgent
}

// SubAgents implements [types.Agent].
func (b *baseAgent) SubAgents() []types.Agent {
	return b.subAgents
}

// RootAgent implements [types.Agent].
func (b *baseAgent) RootAgent() types.Agent {
	root := b.self
	for root.ParentAgent() != nil {
		root = root.ParentAgent()
	}
	return root
}

// FindAgent implements [types.Agent].
func (b *baseAgent) FindAgent(name string) types.Agent {
	if name == b.name {
		return b.self
	}
	return b.FindSubAgent(name)
}

// FindSubAgent implements [types.Agent].
func (b *baseAgent) FindSubAgent(name string) types.Agent {
	for _, sub := range b.subAgents {
		if found := sub.FindAgent(name); found != nil {
			return found
		}
	}
	return nil
}
