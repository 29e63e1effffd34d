package skeleton

import "fmt"

// Slot is the instance state of a SlotData within a Skeleton: the one
// attachment currently shown at that attachment point, or nil.
type Slot struct {
	Data *SlotData

	attachment Attachment
}

// Attachment returns the currently attached object, or nil.
func (s *Slot) Attachment() Attachment { return s.attachment }

// SetAttachment changes the currently attached object. A nil attachment
// empties the slot.
func (s *Slot) SetAttachment(attachment Attachment) {
	s.attachment = attachment
}

func (s *Slot) String() string { return s.Data.Name }

// Skeleton is a live instance of a SkeletonData. Multiple skeletons can
// share one SkeletonData; each has its own slot state and active skin.
// Not safe for concurrent use.
type Skeleton struct {
	Data  *SkeletonData
	Slots []*Slot

	skin *Skin
}

// NewSkeleton creates a skeleton instance with its slots in the setup
// pose: each slot shows its setup attachment, resolved through the default
// skin.
func NewSkeleton(data *SkeletonData) (*Skeleton, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: data cannot be nil", ErrInvalidArgument)
	}
	sk := &Skeleton{Data: data}
	sk.Slots = make([]*Slot, len(data.Slots))
	for i, slotData := range data.Slots {
		sk.Slots[i] = &Slot{Data: slotData}
	}
	sk.SetSlotsToSetupPose()
	return sk, nil
}

// Skin returns the active skin, or nil.
func (sk *Skeleton) Skin() *Skin { return sk.skin }

// SetSlotsToSetupPose resets every slot to its setup attachment, resolved
// through the active and default skins.
func (sk *Skeleton) SetSlotsToSetupPose() {
	for _, slot := range sk.Slots {
		var attachment Attachment
		if name := slot.Data.AttachmentName; name != "" {
			attachment, _ = sk.Attachment(slot.Data.Index, name)
		}
		slot.SetAttachment(attachment)
	}
}

// SetSkinByName sets the active skin by name. The skin must exist in the
// skeleton's data.
func (sk *Skeleton) SetSkinByName(name string) error {
	skin := sk.Data.FindSkin(name)
	if skin == nil {
		return fmt.Errorf("skin not found: %s", name)
	}
	return sk.SetSkin(skin)
}

// SetSkin changes the active skin. If the slot's current attachment came
// from the previous skin, it is swapped for the new skin's attachment under
// the same slot and name; slots showing non-skin attachments keep them. If
// there was no previous skin, each slot's setup attachment is attached from
// the new skin. A nil skin clears the active skin without detaching.
func (sk *Skeleton) SetSkin(newSkin *Skin) error {
	if newSkin == sk.skin {
		return nil
	}
	if newSkin != nil {
		if sk.skin != nil {
			newSkin.attachAll(sk, sk.skin)
		} else {
			for _, slot := range sk.Slots {
				name := slot.Data.AttachmentName
				if name == "" {
					continue
				}
				attachment, err := newSkin.GetAttachment(slot.Data.Index, name)
				if err != nil {
					return err
				}
				if attachment != nil {
					slot.SetAttachment(attachment)
				}
			}
		}
	}
	sk.skin = newSkin
	return nil
}

// Attachment resolves an attachment by slot index and name, checking the
// active skin first and the default skin second. Returns nil if neither
// has a binding.
func (sk *Skeleton) Attachment(slotIndex int, name string) (Attachment, error) {
	if slotIndex < 0 {
		return nil, fmt.Errorf("%w: slotIndex must be >= 0, got %d", ErrInvalidArgument, slotIndex)
	}
	if sk.skin != nil {
		attachment, err := sk.skin.GetAttachment(slotIndex, name)
		if err != nil {
			return nil, err
		}
		if attachment != nil {
			return attachment, nil
		}
	}
	if sk.Data.DefaultSkin != nil {
		return sk.Data.DefaultSkin.GetAttachment(slotIndex, name)
	}
	return nil, nil
}

// FindSlot returns the slot instance with the given name, or nil.
func (sk *Skeleton) FindSlot(name string) *Slot {
	for _, slot := range sk.Slots {
		if slot.Data.Name == name {
			return slot
		}
	}
	return nil
}

// SetAttachment attaches the named attachment to the named slot, resolving
// it through the active and default skins. An empty attachment name empties
// the slot.
func (sk *Skeleton) SetAttachment(slotName, attachmentName string) error {
	slot := sk.FindSlot(slotName)
	if slot == nil {
		return fmt.Errorf("slot not found: %s", slotName)
	}
	var attachment Attachment
	if attachmentName != "" {
		var err error
		attachment, err = sk.Attachment(slot.Data.Index, attachmentName)
		if err != nil {
			return err
		}
		if attachment == nil {
			return fmt.Errorf("attachment not found: %s (slot %s)", attachmentName, slotName)
		}
	}
	slot.SetAttachment(attachment)
	return nil
}

func (sk *Skeleton) String() string { return sk.Data.String() }
