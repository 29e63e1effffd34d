package skeleton

import (
	"errors"
	"testing"
)

func mustSkin(t *testing.T, name string) *Skin {
	t.Helper()
	s, err := NewSkin(name)
	if err != nil {
		t.Fatalf("NewSkin(%q) failed: %v", name, err)
	}
	return s
}

func TestNewSkin_EmptyName(t *testing.T) {
	_, err := NewSkin("")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSkin_SetGetAttachment(t *testing.T) {
	s := mustSkin(t, "a")
	boot := NewRegionAttachment("boot")

	if err := s.SetAttachment(2, "boot", boot); err != nil {
		t.Fatalf("SetAttachment failed: %v", err)
	}

	got, err := s.GetAttachment(2, "boot")
	if err != nil {
		t.Fatalf("GetAttachment failed: %v", err)
	}
	if got != Attachment(boot) {
		t.Errorf("expected the attachment that was set, got %v", got)
	}

	if got, _ := s.GetAttachment(2, "shoe"); got != nil {
		t.Errorf("expected nil for absent name, got %v", got)
	}
	if got, _ := s.GetAttachment(3, "boot"); got != nil {
		t.Errorf("expected nil for absent slot, got %v", got)
	}
}

func TestSkin_OverwriteSameKey(t *testing.T) {
	s := mustSkin(t, "a")
	first := NewRegionAttachment("boot")
	second := NewRegionAttachment("boot")

	_ = s.SetAttachment(2, "boot", first)
	if err := s.SetAttachment(2, "boot", second); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	if s.Size() != 1 {
		t.Errorf("expected size 1 after overwrite, got %d", s.Size())
	}
	if got, _ := s.GetAttachment(2, "boot"); got != Attachment(second) {
		t.Errorf("expected the second attachment, got %v", got)
	}
}

func TestSkin_RemoveAttachment(t *testing.T) {
	s := mustSkin(t, "a")
	_ = s.SetAttachment(0, "hat", NewRegionAttachment("hat"))
	_ = s.SetAttachment(2, "boot", NewRegionAttachment("boot"))
	_ = s.SetAttachment(5, "cape", NewRegionAttachment("cape"))

	if err := s.RemoveAttachment(2, "boot"); err != nil {
		t.Fatalf("RemoveAttachment failed: %v", err)
	}
	if got, _ := s.GetAttachment(2, "boot"); got != nil {
		t.Errorf("expected nil after removal, got %v", got)
	}
	if s.Size() != 2 {
		t.Errorf("expected size 2, got %d", s.Size())
	}

	// Survivors keep insertion order and stay reachable.
	entries := s.Attachments()
	if entries[0].Name != "hat" || entries[1].Name != "cape" {
		t.Errorf("unexpected order after removal: %v", entries)
	}
	if got, _ := s.GetAttachment(5, "cape"); got == nil {
		t.Error("cape not reachable after removal of boot")
	}

	// Removing an absent key is a no-op.
	if err := s.RemoveAttachment(2, "boot"); err != nil {
		t.Errorf("remove of absent key returned error: %v", err)
	}
	if s.Size() != 2 {
		t.Errorf("size changed on no-op removal: %d", s.Size())
	}
}

func TestSkin_InvalidArguments(t *testing.T) {
	s := mustSkin(t, "a")

	if err := s.SetAttachment(-1, "boot", NewRegionAttachment("boot")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetAttachment(-1): expected ErrInvalidArgument, got %v", err)
	}
	if err := s.SetAttachment(0, "boot", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetAttachment(nil): expected ErrInvalidArgument, got %v", err)
	}
	if _, err := s.GetAttachment(-1, "boot"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GetAttachment(-1): expected ErrInvalidArgument, got %v", err)
	}
	if err := s.RemoveAttachment(-1, "boot"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RemoveAttachment(-1): expected ErrInvalidArgument, got %v", err)
	}
	if s.Size() != 0 {
		t.Errorf("failed calls mutated the skin: size %d", s.Size())
	}
}

func TestSkin_AddSkin(t *testing.T) {
	a := mustSkin(t, "a")
	b := mustSkin(t, "b")

	shared := &BoneData{Index: 0, Name: "torso"}
	aOnly := &BoneData{Index: 1, Name: "arm"}
	bOnly := &BoneData{Index: 2, Name: "leg"}
	// Same contents as shared, different record: must not be merged away.
	twin := &BoneData{Index: 0, Name: "torso"}
	constraint := &ConstraintData{Name: "ik", Order: 1}

	a.AddBone(shared)
	a.AddBone(aOnly)
	b.AddBone(shared)
	b.AddBone(bOnly)
	b.AddBone(twin)
	b.AddConstraint(constraint)

	hat := NewRegionAttachment("hat")
	boot := NewRegionAttachment("boot")
	_ = b.SetAttachment(0, "hat", hat)
	_ = b.SetAttachment(2, "boot", boot)

	if err := a.AddSkin(b); err != nil {
		t.Fatalf("AddSkin failed: %v", err)
	}

	// Attachments are shared by reference.
	if got, _ := a.GetAttachment(0, "hat"); got != Attachment(hat) {
		t.Errorf("expected shared hat reference, got %v", got)
	}
	if got, _ := a.GetAttachment(2, "boot"); got != Attachment(boot) {
		t.Errorf("expected shared boot reference, got %v", got)
	}

	bones := a.Bones()
	if len(bones) != 4 {
		t.Fatalf("expected 4 bones (identity union), got %d", len(bones))
	}
	want := []*BoneData{shared, aOnly, bOnly, twin}
	for i, bone := range want {
		if bones[i] != bone {
			t.Errorf("bone %d: expected %v, got %v", i, bone, bones[i])
		}
	}
	if len(a.Constraints()) != 1 || a.Constraints()[0] != constraint {
		t.Errorf("expected constraint union of 1, got %v", a.Constraints())
	}
}

func TestSkin_CopySkin(t *testing.T) {
	a := mustSkin(t, "a")
	b := mustSkin(t, "b")

	bone := &BoneData{Index: 0, Name: "torso"}
	b.AddBone(bone)

	hat := NewRegionAttachment("hat")
	hat.Width = 32
	_ = b.SetAttachment(0, "hat", hat)

	if err := a.CopySkin(b); err != nil {
		t.Fatalf("CopySkin failed: %v", err)
	}

	got, _ := a.GetAttachment(0, "hat")
	if got == nil {
		t.Fatal("expected copied hat")
	}
	if got == Attachment(hat) {
		t.Error("expected a deep copy, got the original reference")
	}
	copied, ok := got.(*RegionAttachment)
	if !ok {
		t.Fatalf("expected *RegionAttachment, got %T", got)
	}
	if copied.Name() != "hat" || copied.Width != 32 {
		t.Errorf("copy content mismatch: %+v", copied)
	}
	if len(a.Bones()) != 1 || a.Bones()[0] != bone {
		t.Errorf("expected shared bone reference, got %v", a.Bones())
	}
}

func TestSkin_CopySkinRelinksParentMesh(t *testing.T) {
	a := mustSkin(t, "a")
	b := mustSkin(t, "b")

	parent := NewMeshAttachment("body")
	parent.RegionUVs = []float32{0, 0, 1, 0, 1, 1}
	parent.Vertices = []float32{0, 0, 10, 0, 10, 10}
	parent.Triangles = []uint16{0, 1, 2}

	child := NewMeshAttachment("body-overlay")
	child.RegionU, child.RegionV = 0.5, 0.5
	child.RegionU2, child.RegionV2 = 1, 1
	child.SetParentMesh(parent)

	_ = b.SetAttachment(3, "body", parent)
	_ = b.SetAttachment(3, "body-overlay", child)

	if err := a.CopySkin(b); err != nil {
		t.Fatalf("CopySkin failed: %v", err)
	}

	gotParent, _ := a.GetAttachment(3, "body")
	gotChild, _ := a.GetAttachment(3, "body-overlay")
	childMesh, ok := gotChild.(*MeshAttachment)
	if !ok {
		t.Fatalf("expected *MeshAttachment, got %T", gotChild)
	}

	if childMesh.ParentMesh() == parent {
		t.Error("parent link still points at the original mesh")
	}
	if Attachment(childMesh.ParentMesh()) != gotParent {
		t.Errorf("parent link not repointed to the copy: %v", childMesh.ParentMesh())
	}

	// UVs were recomputed against the child's region after relinking.
	if len(childMesh.UVs) != len(parent.RegionUVs) {
		t.Fatalf("expected %d uvs, got %d", len(parent.RegionUVs), len(childMesh.UVs))
	}
	if childMesh.UVs[0] != 0.5 || childMesh.UVs[1] != 0.5 {
		t.Errorf("uv 0: expected (0.5, 0.5), got (%v, %v)", childMesh.UVs[0], childMesh.UVs[1])
	}

	// B's own meshes are untouched.
	if child.ParentMesh() != parent {
		t.Error("source skin's parent link was modified")
	}
}

func TestSkin_Clear(t *testing.T) {
	s := mustSkin(t, "a")
	_ = s.SetAttachment(2, "boot", NewRegionAttachment("boot"))
	s.AddBone(&BoneData{Name: "torso"})
	s.AddConstraint(&ConstraintData{Name: "ik"})

	s.Clear()

	if s.Size() != 0 {
		t.Errorf("expected size 0, got %d", s.Size())
	}
	if len(s.Bones()) != 0 || len(s.Constraints()) != 0 {
		t.Error("expected empty bone and constraint lists")
	}
	if s.Name() != "a" {
		t.Errorf("name changed on clear: %s", s.Name())
	}
}

func TestSkin_AttachmentsOrder(t *testing.T) {
	s := mustSkin(t, "a")
	_ = s.SetAttachment(5, "cape", NewRegionAttachment("cape"))
	_ = s.SetAttachment(0, "hat", NewRegionAttachment("hat"))
	_ = s.SetAttachment(2, "boot", NewRegionAttachment("boot"))
	// Overwrite must keep the original position.
	_ = s.SetAttachment(5, "cape", NewRegionAttachment("cape2"))

	entries := s.Attachments()
	names := []string{"cape", "hat", "boot"}
	if len(entries) != len(names) {
		t.Fatalf("expected %d entries, got %d", len(names), len(entries))
	}
	for i, name := range names {
		if entries[i].Name != name {
			t.Errorf("entry %d: expected %s, got %s", i, name, entries[i].Name)
		}
	}
}

func TestSkin_AttachmentsForSlot(t *testing.T) {
	s := mustSkin(t, "a")
	_ = s.SetAttachment(2, "boot", NewRegionAttachment("boot"))
	_ = s.SetAttachment(0, "hat", NewRegionAttachment("hat"))
	_ = s.SetAttachment(2, "spur", NewRegionAttachment("spur"))

	out := []SkinEntry{{SlotIndex: 9, Name: "sentinel"}}
	s.AttachmentsForSlot(2, &out)

	if len(out) != 3 {
		t.Fatalf("expected append to keep existing elements, got %d entries", len(out))
	}
	if out[0].Name != "sentinel" {
		t.Error("existing elements were clobbered")
	}
	if out[1].Name != "boot" || out[2].Name != "spur" {
		t.Errorf("unexpected slot entries: %v", out[1:])
	}
}

func TestSkinEntry_Hash(t *testing.T) {
	a := SkinEntry{SlotIndex: 2, Name: "boot"}
	b := SkinEntry{SlotIndex: 2, Name: "boot", Attachment: NewRegionAttachment("boot")}
	if a.Hash() != b.Hash() {
		t.Error("hash must ignore the attachment payload")
	}
	if a.Hash() != stringHash("boot")+2*37 {
		t.Errorf("unexpected hash: %d", a.Hash())
	}
	c := SkinEntry{SlotIndex: 3, Name: "boot"}
	if a.Hash() == c.Hash() {
		t.Error("expected slot index to contribute to the hash")
	}
}
