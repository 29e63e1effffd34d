package formats

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/armature/pkg/skeleton"
)

// MarshalSkel serializes skeleton data back into document form. The result
// parses to equivalent data with ParseSkel.
func MarshalSkel(data *skeleton.SkeletonData) ([]byte, error) {
	doc := skelDoc{
		Version: SkelVersion,
		Name:    data.Name,
	}

	for _, bone := range data.Bones {
		def := boneDef{Name: bone.Name, Length: bone.Length}
		if bone.Parent != nil {
			def.Parent = bone.Parent.Name
		}
		doc.Bones = append(doc.Bones, def)
	}

	for _, slot := range data.Slots {
		doc.Slots = append(doc.Slots, slotDef{
			Name:       slot.Name,
			Bone:       slot.Bone.Name,
			Attachment: slot.AttachmentName,
		})
	}

	for _, constraint := range data.Constraints {
		order := constraint.Order
		doc.Constraints = append(doc.Constraints, constraintDef{
			Name:  constraint.Name,
			Order: &order,
		})
	}

	for _, skin := range data.Skins {
		def, err := marshalSkin(data, skin)
		if err != nil {
			return nil, err
		}
		doc.Skins = append(doc.Skins, def)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("encoding skeleton document: %w", err)
	}
	return out, nil
}

func marshalSkin(data *skeleton.SkeletonData, skin *skeleton.Skin) (skinDef, error) {
	def := skinDef{Name: skin.Name()}

	for _, bone := range skin.Bones() {
		def.Bones = append(def.Bones, bone.Name)
	}
	for _, constraint := range skin.Constraints() {
		def.Constraints = append(def.Constraints, constraint.Name)
	}

	for _, entry := range skin.Attachments() {
		if entry.SlotIndex >= len(data.Slots) {
			return skinDef{}, fmt.Errorf("skin %s: entry %s references slot %d outside the skeleton",
				skin.Name(), entry.Name, entry.SlotIndex)
		}
		att := attachmentDef{
			Slot: data.Slots[entry.SlotIndex].Name,
			Name: entry.Name,
		}
		switch a := entry.Attachment.(type) {
		case *skeleton.RegionAttachment:
			att.Type = "region"
			att.Path = a.Path
			att.X, att.Y = a.X, a.Y
			att.Rotation = a.Rotation
			att.ScaleX, att.ScaleY = a.ScaleX, a.ScaleY
			att.Width, att.Height = a.Width, a.Height
		case *skeleton.MeshAttachment:
			att.Type = "mesh"
			att.Path = a.Path
			att.UVs = a.RegionUVs
			att.Vertices = a.Vertices
			att.Triangles = a.Triangles
			att.Hull = a.HullLength
			att.Region = [4]float32{a.RegionU, a.RegionV, a.RegionU2, a.RegionV2}
			if a.ParentMesh() != nil {
				att.Parent = a.ParentMesh().Name()
			}
		case *skeleton.BoundingBoxAttachment:
			att.Type = "box"
			att.Vertices = a.Vertices
		default:
			return skinDef{}, fmt.Errorf("skin %s: cannot serialize attachment %s of type %T",
				skin.Name(), entry.Name, entry.Attachment)
		}
		def.Attachments = append(def.Attachments, att)
	}

	return def, nil
}

// WriteSkelFile serializes skeleton data and writes it to path, creating
// parent directories as needed.
func WriteSkelFile(path string, data *skeleton.SkeletonData) error {
	out, err := MarshalSkel(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
