// Package skeleton implements the data layer of a 2D skeletal animation
// runtime: skeleton definitions, slots, attachments, and skins. Pose
// computation and rendering are host engine concerns and live elsewhere.
package skeleton

import "fmt"

// BoneData describes a bone in the skeleton's setup pose. Bones are
// compared by reference identity: two records with equal contents are
// distinct bones.
type BoneData struct {
	Index  int
	Name   string
	Parent *BoneData // nil for the root bone
	Length float32
}

func (b *BoneData) String() string { return b.Name }

// SlotData describes a slot in the skeleton's setup pose. A slot is an
// attachment point on a bone that holds at most one active attachment.
type SlotData struct {
	Index int
	Name  string
	Bone  *BoneData

	// AttachmentName is the name of the attachment visible in the setup
	// pose, or empty if the slot starts empty.
	AttachmentName string
}

func (s *SlotData) String() string { return s.Name }

// ConstraintData describes a constraint applied to the skeleton. The
// runtime treats it as an opaque record compared by reference identity.
type ConstraintData struct {
	Name  string
	Order int
}

func (c *ConstraintData) String() string { return c.Name }

// SkeletonData is the shared, stateless definition of a skeleton: bones,
// slots, constraints, and skins. Many Skeleton instances may reference one
// SkeletonData. It owns the objects that skins and slots reference.
type SkeletonData struct {
	Name        string
	Bones       []*BoneData
	Slots       []*SlotData
	Constraints []*ConstraintData
	Skins       []*Skin

	// DefaultSkin holds attachments not assigned to any named skin. May be
	// nil. Attachment resolution falls back to it when the active skin has
	// no binding.
	DefaultSkin *Skin
}

// FindBone returns the bone with the given name, or nil.
func (d *SkeletonData) FindBone(name string) *BoneData {
	for _, bone := range d.Bones {
		if bone.Name == name {
			return bone
		}
	}
	return nil
}

// FindSlot returns the slot with the given name, or nil.
func (d *SkeletonData) FindSlot(name string) *SlotData {
	for _, slot := range d.Slots {
		if slot.Name == name {
			return slot
		}
	}
	return nil
}

// FindSkin returns the skin with the given name, or nil.
func (d *SkeletonData) FindSkin(name string) *Skin {
	for _, skin := range d.Skins {
		if skin.Name() == name {
			return skin
		}
	}
	return nil
}

// FindConstraint returns the constraint with the given name, or nil.
func (d *SkeletonData) FindConstraint(name string) *ConstraintData {
	for _, constraint := range d.Constraints {
		if constraint.Name == name {
			return constraint
		}
	}
	return nil
}

func (d *SkeletonData) String() string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("SkeletonData(%d bones, %d slots)", len(d.Bones), len(d.Slots))
}
