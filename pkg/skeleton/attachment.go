package skeleton

// Attachment is a visual or physical object bound to a slot: an image
// region, a deformable mesh, a bounding polygon. Attachments are owned by
// the SkeletonData that defines them; skins and slots hold shared
// references.
type Attachment interface {
	// Name returns the attachment's name, unique within its skin entry.
	Name() string
	// Copy returns a deep copy. Mesh copies keep their parent mesh
	// reference; relinking to a copied parent is the caller's job.
	Copy() Attachment
}

// RegionAttachment is a textured rectangle positioned relative to a bone.
type RegionAttachment struct {
	name string

	// Path is the texture region name, when different from the attachment
	// name.
	Path     string
	X, Y     float32
	Rotation float32
	ScaleX   float32
	ScaleY   float32
	Width    float32
	Height   float32
}

// NewRegionAttachment creates a region attachment with unit scale.
func NewRegionAttachment(name string) *RegionAttachment {
	return &RegionAttachment{name: name, ScaleX: 1, ScaleY: 1}
}

func (a *RegionAttachment) Name() string { return a.name }

// Copy returns a deep copy of the region attachment.
func (a *RegionAttachment) Copy() Attachment {
	c := *a
	return &c
}

// MeshAttachment is a deformable textured mesh. A mesh may link to a parent
// mesh whose geometry (vertices, mesh UVs, triangles, hull) it shares.
type MeshAttachment struct {
	name string

	Path string

	// RegionUVs are the mesh's texture coordinates within its region,
	// one (u, v) pair per vertex.
	RegionUVs []float32
	// UVs are the derived atlas texture coordinates, recomputed by
	// UpdateUVs whenever the region or geometry changes.
	UVs []float32
	// Vertices are the untransformed mesh vertices, one (x, y) pair per
	// vertex.
	Vertices   []float32
	Triangles  []uint16
	HullLength int

	// Texture region bounds in atlas coordinates.
	RegionU, RegionV   float32
	RegionU2, RegionV2 float32

	parentMesh *MeshAttachment
}

// NewMeshAttachment creates a mesh attachment covering a full region.
func NewMeshAttachment(name string) *MeshAttachment {
	return &MeshAttachment{name: name, RegionU2: 1, RegionV2: 1}
}

func (m *MeshAttachment) Name() string { return m.name }

// ParentMesh returns the mesh this mesh inherits geometry from, or nil.
func (m *MeshAttachment) ParentMesh() *MeshAttachment { return m.parentMesh }

// SetParentMesh links this mesh to a parent and adopts its geometry. A nil
// parent unlinks without clearing previously adopted geometry.
func (m *MeshAttachment) SetParentMesh(parent *MeshAttachment) {
	m.parentMesh = parent
	if parent != nil {
		m.RegionUVs = parent.RegionUVs
		m.Vertices = parent.Vertices
		m.Triangles = parent.Triangles
		m.HullLength = parent.HullLength
	}
}

// UpdateUVs recomputes the atlas texture coordinates from the mesh UVs and
// the texture region bounds.
func (m *MeshAttachment) UpdateUVs() {
	if len(m.UVs) != len(m.RegionUVs) {
		m.UVs = make([]float32, len(m.RegionUVs))
	}
	u, v := m.RegionU, m.RegionV
	width := m.RegionU2 - m.RegionU
	height := m.RegionV2 - m.RegionV
	for i := 0; i < len(m.RegionUVs); i += 2 {
		m.UVs[i] = u + m.RegionUVs[i]*width
		m.UVs[i+1] = v + m.RegionUVs[i+1]*height
	}
}

// Copy returns a deep copy of the mesh. The parent mesh reference is
// carried over as-is.
func (m *MeshAttachment) Copy() Attachment {
	c := *m
	c.RegionUVs = append([]float32(nil), m.RegionUVs...)
	c.UVs = append([]float32(nil), m.UVs...)
	c.Vertices = append([]float32(nil), m.Vertices...)
	c.Triangles = append([]uint16(nil), m.Triangles...)
	return &c
}

// BoundingBoxAttachment is an invisible polygon used for hit detection.
type BoundingBoxAttachment struct {
	name string

	// Vertices are (x, y) pairs describing the polygon.
	Vertices []float32
}

// NewBoundingBoxAttachment creates an empty bounding box attachment.
func NewBoundingBoxAttachment(name string) *BoundingBoxAttachment {
	return &BoundingBoxAttachment{name: name}
}

func (b *BoundingBoxAttachment) Name() string { return b.name }

// Copy returns a deep copy of the bounding box.
func (b *BoundingBoxAttachment) Copy() Attachment {
	c := *b
	c.Vertices = append([]float32(nil), b.Vertices...)
	return &c
}
