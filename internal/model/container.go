// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// DefaultContainerName is the name given to newly created containers.
const DefaultContainerName = "New Test Case"

// Container is a named, ordered sequence of steps (a "test case"). It always
// holds at least one step; emptying it reinserts a placeholder.
type Container struct {
	Name  string
	Steps []*Step
}

// NewContainer returns a container holding a single placeholder step.
func NewContainer(name string) *Container {
	if name == "" {
		name = DefaultContainerName
	}
	return &Container{Name: name, Steps: []*Step{NewPlaceholder()}}
}

// Clear drops every step and leaves exactly one placeholder.
func (c *Container) Clear() {
	c.Steps = []*Step{NewPlaceholder()}
}

// BoundSteps returns the non-placeholder steps in order.
func (c *Container) BoundSteps() []*Step {
	bound := make([]*Step, 0, len(c.Steps))
	for _, s := range c.Steps {
		if !s.Placeholder() {
			bound = append(bound, s)
		}
	}
	return bound
}

// Append binds b to the trailing placeholder if there is one, otherwise it
// adds a new bound step at the end.
func (c *Container) Append(b *Block) *Step {
	if n := len(c.Steps); n > 0 && c.Steps[n-1].Placeholder() {
		c.Steps[n-1].Bind(b)
		return c.Steps[n-1]
	}
	s := NewBoundStep(b)
	c.Steps = append(c.Steps, s)
	return s
}

// AddPlaceholder appends an empty slot for the next block to be dropped on.
func (c *Container) AddPlaceholder() *Step {
	s := NewPlaceholder()
	c.Steps = append(c.Steps, s)
	return s
}

// Bind binds b to the step at index i, replacing whatever it held.
func (c *Container) Bind(i int, b *Block) error {
	if err := c.check(i); err != nil {
		return err
	}
	c.Steps[i].Bind(b)
	return nil
}

// Remove deletes the step at index i. Removing the last step leaves a placeholder.
func (c *Container) Remove(i int) error {
	if err := c.check(i); err != nil {
		return err
	}
	c.Steps = append(c.Steps[:i], c.Steps[i+1:]...)
	if len(c.Steps) == 0 {
		c.Clear()
	}
	return nil
}

// Move relocates the step at index from to index to, shifting the steps in
// between.
func (c *Container) Move(from, to int) error {
	if err := c.check(from); err != nil {
		return err
	}
	if err := c.check(to); err != nil {
		return err
	}
	s := c.Steps[from]
	c.Steps = append(c.Steps[:from], c.Steps[from+1:]...)
	c.Steps = append(c.Steps[:to], append([]*Step{s}, c.Steps[to:]...)...)
	return nil
}

// Clone returns a deep copy of the container.
func (c *Container) Clone() *Container {
	out := &Container{Name: c.Name, Steps: make([]*Step, len(c.Steps))}
	for i, s := range c.Steps {
		out.Steps[i] = s.Clone()
	}
	return out
}

func (c *Container) check(i int) error {
	if i < 0 || i >= len(c.Steps) {
		return fmt.Errorf("%w: step %d of %d in '%s'", ErrIndexOutOfRange, i, len(c.Steps), c.Name)
	}
	return nil
}
