// Package formats provides parsers for armature skeleton documents.
package formats

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/armature/pkg/skeleton"
)

// Skeleton document errors.
var (
	ErrUnsupportedSkelVersion = errors.New("unsupported skeleton document version")
	ErrNoBones                = errors.New("skeleton document has no bones")
	ErrDuplicateBone          = errors.New("duplicate bone name")
	ErrDuplicateSlot          = errors.New("duplicate slot name")
	ErrDuplicateSkin          = errors.New("duplicate skin name")
	ErrUnknownBone            = errors.New("unknown bone name")
	ErrUnknownSlot            = errors.New("unknown slot name")
	ErrUnknownConstraint      = errors.New("unknown constraint name")
	ErrUnknownAttachmentType  = errors.New("unknown attachment type")
	ErrUnknownParentMesh      = errors.New("unknown parent mesh")
)

// SkelVersion is the current skeleton document version.
const SkelVersion = 1

// skelDoc is the on-disk shape of a skeleton document.
type skelDoc struct {
	Version     int             `yaml:"version,omitempty"`
	Name        string          `yaml:"name,omitempty"`
	Bones       []boneDef       `yaml:"bones"`
	Slots       []slotDef       `yaml:"slots,omitempty"`
	Constraints []constraintDef `yaml:"constraints,omitempty"`
	Skins       []skinDef       `yaml:"skins,omitempty"`
}

type boneDef struct {
	Name   string  `yaml:"name"`
	Parent string  `yaml:"parent,omitempty"`
	Length float32 `yaml:"length,omitempty"`
}

type slotDef struct {
	Name       string `yaml:"name"`
	Bone       string `yaml:"bone"`
	Attachment string `yaml:"attachment,omitempty"`
}

// constraintDef's Order is a pointer so an explicit "order: 0" is kept
// apart from an omitted order, which defaults to document position.
type constraintDef struct {
	Name  string `yaml:"name"`
	Order *int   `yaml:"order,omitempty"`
}

type skinDef struct {
	Name        string          `yaml:"name"`
	Bones       []string        `yaml:"bones,omitempty"`
	Constraints []string        `yaml:"constraints,omitempty"`
	Attachments []attachmentDef `yaml:"attachments,omitempty"`
}

type attachmentDef struct {
	Slot string `yaml:"slot"`
	Name string `yaml:"name"`
	Type string `yaml:"type"` // region, mesh, box
	Path string `yaml:"path,omitempty"`

	// Region fields.
	X        float32 `yaml:"x,omitempty"`
	Y        float32 `yaml:"y,omitempty"`
	Rotation float32 `yaml:"rotation,omitempty"`
	ScaleX   float32 `yaml:"scaleX,omitempty"`
	ScaleY   float32 `yaml:"scaleY,omitempty"`
	Width    float32 `yaml:"width,omitempty"`
	Height   float32 `yaml:"height,omitempty"`

	// Mesh fields. Region is [u, v, u2, v2] in atlas coordinates.
	Parent    string     `yaml:"parent,omitempty"`
	UVs       []float32  `yaml:"uvs,omitempty"`
	Triangles []uint16   `yaml:"triangles,omitempty"`
	Hull      int        `yaml:"hull,omitempty"`
	Region    [4]float32 `yaml:"region,omitempty"`

	// Mesh and box vertices, (x, y) pairs.
	Vertices []float32 `yaml:"vertices,omitempty"`
}

// ParseSkel parses a skeleton document from raw YAML bytes.
func ParseSkel(data []byte) (*skeleton.SkeletonData, error) {
	var doc skelDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding skeleton document: %w", err)
	}
	if doc.Version > SkelVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSkelVersion, doc.Version)
	}
	if len(doc.Bones) == 0 {
		return nil, ErrNoBones
	}

	out := &skeleton.SkeletonData{Name: doc.Name}

	for i, def := range doc.Bones {
		if out.FindBone(def.Name) != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBone, def.Name)
		}
		bone := &skeleton.BoneData{Index: i, Name: def.Name, Length: def.Length}
		if def.Parent != "" {
			bone.Parent = out.FindBone(def.Parent)
			if bone.Parent == nil {
				return nil, fmt.Errorf("%w: %s (bone %s)", ErrUnknownBone, def.Parent, def.Name)
			}
		}
		out.Bones = append(out.Bones, bone)
	}

	for i, def := range doc.Slots {
		if out.FindSlot(def.Name) != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlot, def.Name)
		}
		bone := out.FindBone(def.Bone)
		if bone == nil {
			return nil, fmt.Errorf("%w: %s (slot %s)", ErrUnknownBone, def.Bone, def.Name)
		}
		out.Slots = append(out.Slots, &skeleton.SlotData{
			Index:          i,
			Name:           def.Name,
			Bone:           bone,
			AttachmentName: def.Attachment,
		})
	}

	for i, def := range doc.Constraints {
		order := i
		if def.Order != nil {
			order = *def.Order
		}
		out.Constraints = append(out.Constraints, &skeleton.ConstraintData{Name: def.Name, Order: order})
	}

	for _, def := range doc.Skins {
		if out.FindSkin(def.Name) != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSkin, def.Name)
		}
		skin, err := parseSkin(out, def)
		if err != nil {
			return nil, fmt.Errorf("skin %s: %w", def.Name, err)
		}
		out.Skins = append(out.Skins, skin)
		if skin.Name() == "default" {
			out.DefaultSkin = skin
		}
	}

	return out, nil
}

// parseSkin builds one skin, resolving bone, constraint, and parent mesh
// references.
func parseSkin(data *skeleton.SkeletonData, def skinDef) (*skeleton.Skin, error) {
	skin, err := skeleton.NewSkin(def.Name)
	if err != nil {
		return nil, err
	}

	for _, name := range def.Bones {
		bone := data.FindBone(name)
		if bone == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBone, name)
		}
		skin.AddBone(bone)
	}
	for _, name := range def.Constraints {
		constraint := data.FindConstraint(name)
		if constraint == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownConstraint, name)
		}
		skin.AddConstraint(constraint)
	}

	for _, att := range def.Attachments {
		slot := data.FindSlot(att.Slot)
		if slot == nil {
			return nil, fmt.Errorf("%w: %s (attachment %s)", ErrUnknownSlot, att.Slot, att.Name)
		}
		attachment, err := buildAttachment(att)
		if err != nil {
			return nil, err
		}
		if err := skin.SetAttachment(slot.Index, att.Name, attachment); err != nil {
			return nil, err
		}
	}

	// Parent meshes are resolved after all of the skin's attachments exist,
	// so document order between parent and child doesn't matter.
	for _, att := range def.Attachments {
		if att.Parent == "" {
			continue
		}
		slot := data.FindSlot(att.Slot)
		child, _ := skin.GetAttachment(slot.Index, att.Name)
		mesh, ok := child.(*skeleton.MeshAttachment)
		if !ok {
			return nil, fmt.Errorf("%w: parent on non-mesh attachment %s", ErrUnknownAttachmentType, att.Name)
		}
		parentAtt, _ := skin.GetAttachment(slot.Index, att.Parent)
		parent, ok := parentAtt.(*skeleton.MeshAttachment)
		if !ok || parent == nil {
			return nil, fmt.Errorf("%w: %s (attachment %s)", ErrUnknownParentMesh, att.Parent, att.Name)
		}
		mesh.SetParentMesh(parent)
		mesh.UpdateUVs()
	}

	return skin, nil
}

// buildAttachment converts one attachment definition into a runtime
// attachment.
func buildAttachment(def attachmentDef) (skeleton.Attachment, error) {
	switch def.Type {
	case "region", "":
		a := skeleton.NewRegionAttachment(def.Name)
		a.Path = def.Path
		a.X, a.Y = def.X, def.Y
		a.Rotation = def.Rotation
		if def.ScaleX != 0 {
			a.ScaleX = def.ScaleX
		}
		if def.ScaleY != 0 {
			a.ScaleY = def.ScaleY
		}
		a.Width, a.Height = def.Width, def.Height
		return a, nil
	case "mesh":
		m := skeleton.NewMeshAttachment(def.Name)
		m.Path = def.Path
		m.RegionUVs = def.UVs
		m.Vertices = def.Vertices
		m.Triangles = def.Triangles
		m.HullLength = def.Hull
		if def.Region != [4]float32{} {
			m.RegionU, m.RegionV = def.Region[0], def.Region[1]
			m.RegionU2, m.RegionV2 = def.Region[2], def.Region[3]
		}
		m.UpdateUVs()
		return m, nil
	case "box":
		b := skeleton.NewBoundingBoxAttachment(def.Name)
		b.Vertices = def.Vertices
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %s (attachment %s)", ErrUnknownAttachmentType, def.Type, def.Name)
	}
}

// ParseSkelFile parses a skeleton document from a file.
func ParseSkelFile(path string) (*skeleton.SkeletonData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := ParseSkel(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return out, nil
}
