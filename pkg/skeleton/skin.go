package skeleton

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by all argument validation failures in this
// package. Absence of a requested attachment is never an error.
var ErrInvalidArgument = errors.New("invalid argument")

// SkinEntry is one attachment binding in a skin. Entries are identified by
// slot index and name only; the attachment is payload, not identity.
type SkinEntry struct {
	SlotIndex  int
	Name       string
	Attachment Attachment
}

// Hash returns the entry's key hash: stringHash(name) + slotIndex*37.
// Skin itself keys on a comparable struct, so this is only for callers
// that bucket entries themselves.
func (e SkinEntry) Hash() uint32 {
	return stringHash(e.Name) + uint32(e.SlotIndex)*37
}

// String returns "slotIndex:name".
func (e SkinEntry) String() string {
	return fmt.Sprintf("%d:%s", e.SlotIndex, e.Name)
}

// skinKey is the identity part of a SkinEntry, used as the map key.
type skinKey struct {
	slotIndex int
	name      string
}

// Skin stores attachments by slot index and attachment name, along with the
// bones and constraints its attachments depend on. Skins swap a skeleton's
// visual appearance (equipment, costumes) without touching its topology.
//
// A Skin never owns attachments, bones, or constraints; it records shared
// references owned by the enclosing SkeletonData. Not safe for concurrent
// use without external synchronization.
type Skin struct {
	name        string
	entries     []SkinEntry     // insertion order
	index       map[skinKey]int // key -> position in entries
	bones       []*BoneData
	constraints []*ConstraintData
}

// NewSkin creates an empty skin. The name must be non-empty; it is unique
// within a skeleton and immutable afterward.
func NewSkin(name string) (*Skin, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: skin name cannot be empty", ErrInvalidArgument)
	}
	return &Skin{
		name:  name,
		index: make(map[skinKey]int),
	}, nil
}

// Name returns the skin's name, unique within the skeleton.
func (s *Skin) Name() string { return s.name }

func (s *Skin) String() string { return s.name }

// Size returns the number of attachment bindings in the skin.
func (s *Skin) Size() int { return len(s.entries) }

// SetAttachment adds an attachment to the skin for the specified slot index
// and name, replacing any existing attachment under the same key.
func (s *Skin) SetAttachment(slotIndex int, name string, attachment Attachment) error {
	if attachment == nil {
		return fmt.Errorf("%w: attachment cannot be nil", ErrInvalidArgument)
	}
	if slotIndex < 0 {
		return fmt.Errorf("%w: slotIndex must be >= 0, got %d", ErrInvalidArgument, slotIndex)
	}
	key := skinKey{slotIndex, name}
	if i, ok := s.index[key]; ok {
		s.entries[i].Attachment = attachment
		return nil
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, SkinEntry{SlotIndex: slotIndex, Name: name, Attachment: attachment})
	return nil
}

// GetAttachment returns the attachment for the specified slot index and
// name, or nil if the skin has no such binding.
func (s *Skin) GetAttachment(slotIndex int, name string) (Attachment, error) {
	if slotIndex < 0 {
		return nil, fmt.Errorf("%w: slotIndex must be >= 0, got %d", ErrInvalidArgument, slotIndex)
	}
	if i, ok := s.index[skinKey{slotIndex, name}]; ok {
		return s.entries[i].Attachment, nil
	}
	return nil, nil
}

// RemoveAttachment removes the binding for the specified slot index and
// name, if any. Iteration order of the remaining entries is preserved.
func (s *Skin) RemoveAttachment(slotIndex int, name string) error {
	if slotIndex < 0 {
		return fmt.Errorf("%w: slotIndex must be >= 0, got %d", ErrInvalidArgument, slotIndex)
	}
	key := skinKey{slotIndex, name}
	i, ok := s.index[key]
	if !ok {
		return nil
	}
	delete(s.index, key)
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	for j := i; j < len(s.entries); j++ {
		e := s.entries[j]
		s.index[skinKey{e.SlotIndex, e.Name}] = j
	}
	return nil
}

// AddSkin adds all attachments, bones, and constraints from the specified
// skin to this skin. Attachments are shared, not copied: afterward both
// skins reference the identical attachment objects. Bones and constraints
// are merged by reference identity.
func (s *Skin) AddSkin(other *Skin) error {
	if other == nil {
		return fmt.Errorf("%w: skin cannot be nil", ErrInvalidArgument)
	}
	s.mergeDeps(other)
	for _, e := range other.entries {
		if err := s.SetAttachment(e.SlotIndex, e.Name, e.Attachment); err != nil {
			return err
		}
	}
	return nil
}

// CopySkin adds all attachments, bones, and constraints from the specified
// skin to this skin. Attachments are deep copied. After the copies are
// registered, mesh attachments in this skin whose parent mesh still points
// outside are relinked to the copy stored under the parent's slot and name,
// and their texture coordinates are recomputed.
func (s *Skin) CopySkin(other *Skin) error {
	if other == nil {
		return fmt.Errorf("%w: skin cannot be nil", ErrInvalidArgument)
	}
	s.mergeDeps(other)
	for _, e := range other.entries {
		if err := s.SetAttachment(e.SlotIndex, e.Name, e.Attachment.Copy()); err != nil {
			return err
		}
	}
	// Fix up parent mesh links across the whole skin, not just the entries
	// copied above: a pre-existing mesh whose parent now lives in this skin
	// is relinked too.
	for _, e := range s.entries {
		mesh, ok := e.Attachment.(*MeshAttachment)
		if !ok || mesh.ParentMesh() == nil {
			continue
		}
		attachment, err := s.GetAttachment(e.SlotIndex, mesh.ParentMesh().Name())
		if err != nil {
			return err
		}
		parent, _ := attachment.(*MeshAttachment)
		mesh.SetParentMesh(parent)
		mesh.UpdateUVs()
	}
	return nil
}

// mergeDeps unions other's bone and constraint lists into s, deduplicating
// by reference identity. Distinct records with equal contents stay distinct.
func (s *Skin) mergeDeps(other *Skin) {
	for _, bone := range other.bones {
		if !containsBone(s.bones, bone) {
			s.bones = append(s.bones, bone)
		}
	}
	for _, constraint := range other.constraints {
		if !containsConstraint(s.constraints, constraint) {
			s.constraints = append(s.constraints, constraint)
		}
	}
}

// Attachments returns all bindings in this skin in insertion order. The
// returned slice is the skin's own storage; callers must not modify it.
func (s *Skin) Attachments() []SkinEntry {
	return s.entries
}

// AttachmentsForSlot appends every binding for the given slot to out. The
// destination is not cleared first.
func (s *Skin) AttachmentsForSlot(slotIndex int, out *[]SkinEntry) {
	for _, e := range s.entries {
		if e.SlotIndex == slotIndex {
			*out = append(*out, e)
		}
	}
}

// AddBone records a bone dependency, ignoring reference-identical duplicates.
func (s *Skin) AddBone(bone *BoneData) {
	if bone != nil && !containsBone(s.bones, bone) {
		s.bones = append(s.bones, bone)
	}
}

// AddConstraint records a constraint dependency, ignoring reference-identical
// duplicates.
func (s *Skin) AddConstraint(constraint *ConstraintData) {
	if constraint != nil && !containsConstraint(s.constraints, constraint) {
		s.constraints = append(s.constraints, constraint)
	}
}

// Bones returns the bones this skin's attachments depend on.
func (s *Skin) Bones() []*BoneData { return s.bones }

// Constraints returns the constraints this skin's attachments depend on.
func (s *Skin) Constraints() []*ConstraintData { return s.constraints }

// Clear removes all attachments, bones, and constraints. The name is kept.
func (s *Skin) Clear() {
	s.entries = nil
	s.index = make(map[skinKey]int)
	s.bones = nil
	s.constraints = nil
}

// attachAll attaches each attachment in this skin if the corresponding
// attachment from the old skin is currently attached to the skeleton's
// slot. Called when switching a skeleton's active skin so that visibly
// attached slots are remapped to the new skin's version. Slots showing an
// attachment the old skin doesn't own are left untouched.
func (s *Skin) attachAll(sk *Skeleton, oldSkin *Skin) {
	for _, e := range oldSkin.entries {
		if e.SlotIndex >= len(sk.Slots) {
			continue
		}
		slot := sk.Slots[e.SlotIndex]
		if slot.Attachment() != e.Attachment {
			continue
		}
		if attachment, _ := s.GetAttachment(e.SlotIndex, e.Name); attachment != nil {
			slot.SetAttachment(attachment)
		}
	}
}

func containsBone(bones []*BoneData, bone *BoneData) bool {
	for _, b := range bones {
		if b == bone {
			return true
		}
	}
	return false
}

func containsConstraint(constraints []*ConstraintData, constraint *ConstraintData) bool {
	for _, c := range constraints {
		if c == constraint {
			return true
		}
	}
	return false
}

// stringHash is 32-bit FNV-1a, inlined to keep entry hashing allocation-free.
func stringHash(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * 16777619
	}
	return h
}
