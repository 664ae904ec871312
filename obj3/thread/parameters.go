package thread

import (
	"fmt"

	"github.com/soypat/boltmesh"
)

// Parameters describe a straight single start thread. Crest and root widths
// are given as a percentage of the pitch; the two flanks share what is left.
type Parameters struct {
	MajorDia     float64 // crest diameter of the external thread
	MinorDia     float64 // root diameter of the external thread
	Pitch        float64 // thread to thread distance
	CrestPercent float64
	RootPercent  float64
}

// ISOMinorDiameter returns the minor diameter of an ISO metric
// external thread.
func ISOMinorDiameter(major, pitch float64) float64 {
	return major - 1.082532*pitch
}

// MajorRadius returns half the major diameter.
func (t Parameters) MajorRadius() float64 { return t.MajorDia / 2 }

// MinorRadius returns half the minor diameter.
func (t Parameters) MinorRadius() float64 { return t.MinorDia / 2 }

// CrestHeight returns the axial length of the thread crest.
func (t Parameters) CrestHeight() float64 { return t.Pitch * t.CrestPercent / 100 }

// RootHeight returns the axial length of the thread root.
func (t Parameters) RootHeight() float64 { return t.Pitch * t.RootPercent / 100 }

// FlankHeight returns the axial length of each of the two transitions
// between crest and root.
func (t Parameters) FlankHeight() float64 {
	return (t.Pitch - t.CrestHeight() - t.RootHeight()) / 2
}

// Validate checks the thread can be meshed.
func (t Parameters) Validate() (err error) {
	switch {
	case t.Pitch <= 0:
		err = fmt.Errorf("pitch %g <= 0", t.Pitch)
	case t.MinorDia <= 0:
		err = fmt.Errorf("minor diameter %g <= 0", t.MinorDia)
	case t.MajorDia <= t.MinorDia:
		err = fmt.Errorf("major diameter %g <= minor diameter %g", t.MajorDia, t.MinorDia)
	case t.CrestPercent <= 0 || t.RootPercent <= 0:
		err = fmt.Errorf("crest %g%% and root %g%% must be positive", t.CrestPercent, t.RootPercent)
	case t.CrestPercent+t.RootPercent >= 100:
		err = fmt.Errorf("crest %g%% + root %g%% >= 100%%", t.CrestPercent, t.RootPercent)
	}
	if err != nil {
		return fmt.Errorf("thread: %v: %w", err, boltmesh.ErrInvalidParameter)
	}
	return nil
}
