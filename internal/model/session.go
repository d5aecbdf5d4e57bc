// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// Session is the root aggregate: every container currently open. It always
// holds at least one container.
type Session struct {
	Containers []*Container
}

// NewSession returns a session with one default container holding one
// placeholder step.
func NewSession() *Session {
	return &Session{Containers: []*Container{NewContainer(DefaultContainerName)}}
}

// Clear replaces every container with a single default one.
func (s *Session) Clear() {
	s.Containers = []*Container{NewContainer(DefaultContainerName)}
}

// AddContainer appends a new container and returns it.
func (s *Session) AddContainer(name string) *Container {
	c := NewContainer(name)
	s.Containers = append(s.Containers, c)
	return c
}

// Container returns the container at index i.
func (s *Session) Container(i int) (*Container, error) {
	if i < 0 || i >= len(s.Containers) {
		return nil, fmt.Errorf("%w: container %d of %d", ErrIndexOutOfRange, i, len(s.Containers))
	}
	return s.Containers[i], nil
}

// RemoveContainer deletes the container at index i. Removing the last
// container leaves a fresh default one.
func (s *Session) RemoveContainer(i int) error {
	if _, err := s.Container(i); err != nil {
		return err
	}
	s.Containers = append(s.Containers[:i], s.Containers[i+1:]...)
	if len(s.Containers) == 0 {
		s.Clear()
	}
	return nil
}

// Replace swaps the whole session content for other's, as an import does.
func (s *Session) Replace(other *Session) {
	s.Containers = other.Containers
	if len(s.Containers) == 0 {
		s.Clear()
	}
}

// BoundStepCount returns how many executable slots the session holds.
func (s *Session) BoundStepCount() int {
	n := 0
	for _, c := range s.Containers {
		n += len(c.BoundSteps())
	}
	return n
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := &Session{Containers: make([]*Container, len(s.Containers))}
	for i, c := range s.Containers {
		out.Containers[i] = c.Clone()
	}
	return out
}
