package model

import "time"

// DrawerSession is one open-to-close period of the cash drawer.
// At most one row may have ClosedAt == nil; the database enforces it with a
// partial unique index (see infra.applySchemaPatches).
type DrawerSession struct {
	ID       uint      `gorm:"primaryKey"`
	OpenedBy uint      `gorm:"not null;index"`
	OpenedAt time.Time `gorm:"not null"`
	// ClosedAt is stamped exactly once, on close.
	ClosedAt *time.Time

	Opener *Employee `gorm:"foreignKey:OpenedBy"`
}

// IsOpen reports whether the drawer has not been closed yet.
func (s *DrawerSession) IsOpen() bool { return s.ClosedAt == nil }
