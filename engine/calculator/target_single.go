package calculator

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// SingleTarget follows one subject, optionally raised to eye height and offset.
type SingleTarget struct {
	lifecycle
	config       SingleTargetConfig
	subject      ActorID
	currentPivot mgl32.Vec3
}

var _ TargetCalculator = &SingleTarget{}

// NewSingleTarget creates a target calculator following subject, or the world's primary subject when zero.
//
// Parameters:
//   - config: the target tuning
//   - subject: the actor to follow
//
// Returns:
//   - *SingleTarget: the calculator
func NewSingleTarget(config SingleTargetConfig, subject ActorID) *SingleTarget {
	return &SingleTarget{config: config, subject: subject}
}

func (s *SingleTarget) Compute(deltaTime float32) (mgl32.Vec3, bool) {
	id := s.subject
	if id == 0 && s.world != nil {
		id = s.world.PrimarySubject()
	}
	pos, ok := subjectPosition(s.world, id)
	if !ok {
		return s.currentPivot, false
	}

	if s.config.UseEyeHeight {
		if h, ok := s.world.ActorEyeHeight(id); ok {
			pos[2] += h
		}
	}
	if s.config.Offset != common.VecZero {
		rot, _ := s.world.ActorRotation(id)
		pos = pos.Add(rotatedOffset(s.config.Offset, rot, s.config.UseTargetRotation, s.config.YawOnly))
	}

	return s.smoothVec(&s.currentPivot, pos, deltaTime, s.config.LocationSmoothSpeed), true
}

func (s *SingleTarget) Subject() ActorID {
	return s.subject
}

func (s *SingleTarget) SetSubject(id ActorID) {
	s.subject = id
}

// Config returns the calculator tuning.
func (s *SingleTarget) Config() SingleTargetConfig {
	return s.config
}
