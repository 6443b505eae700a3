package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/podwire/podcodec/param"
	"github.com/podwire/podcodec/pod"
)

// Namer resolves registry ids to human-readable names. The codec treats
// these ids as opaque; naming only matters for presentation.
type Namer interface {
	// ObjectType names an object body-type.
	ObjectType(t pod.Tag) string
	// Key names a property key within the given object body-type.
	Key(bodyType pod.Tag, key uint32) string
}

type registryNamer struct{}

func (registryNamer) ObjectType(t pod.Tag) string { return param.ObjectTypeName(t) }

func (registryNamer) Key(bodyType pod.Tag, key uint32) string {
	return param.KeyName(bodyType, key)
}

// Dumper writes pod trees to an io.Writer, one node per line.
type Dumper struct {
	w     io.Writer
	namer Namer
}

// New returns a Dumper writing to w with the default registry namer.
func New(w io.Writer) *Dumper {
	return &Dumper{w: w, namer: registryNamer{}}
}

// SetNamer replaces the namer used for object types and property keys.
func (d *Dumper) SetNamer(n Namer) {
	if n == nil {
		n = registryNamer{}
	}
	d.namer = n
}

// Dump renders the pod tree rooted at v.
func (d *Dumper) Dump(v pod.View) error {
	return d.node(v, "", "")
}

// Tree renders the pod tree rooted at v into a string using the default
// registry namer.
func Tree(v pod.View) (string, error) {
	var sb strings.Builder
	if err := New(&sb).Dump(v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (d *Dumper) line(indent, label, format string, args ...any) error {
	if label != "" {
		label += ": "
	}
	_, err := fmt.Fprintf(d.w, "%s%s%s\n", indent, label, fmt.Sprintf(format, args...))
	return err
}

// node renders one pod and, for compound types, its children one level
// deeper. label prefixes the line (a property key, a control offset) and
// may be empty.
func (d *Dumper) node(v pod.View, indent, label string) error {
	switch v.Tag() {
	case pod.TagNone:
		return d.line(indent, label, "None")
	case pod.TagBool:
		b, err := v.Bool()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Bool %t", b)
	case pod.TagID:
		id, err := v.ID()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Id %d", id)
	case pod.TagInt:
		n, err := v.Int()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Int %d", n)
	case pod.TagLong:
		n, err := v.Long()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Long %d", n)
	case pod.TagFloat:
		f, err := v.Float()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Float %g", f)
	case pod.TagDouble:
		f, err := v.Double()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Double %g", f)
	case pod.TagString:
		s, err := v.Text()
		if err != nil {
			return err
		}
		return d.line(indent, label, "String %q", s)
	case pod.TagBytes:
		b, err := v.Bytes()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Bytes %s", hexPreview(b))
	case pod.TagBitmap:
		b, err := v.Bitmap()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Bitmap %s", hexPreview(b))
	case pod.TagRectangle:
		r, err := v.Rectangle()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Rectangle %dx%d", r.Width, r.Height)
	case pod.TagFraction:
		f, err := v.Fraction()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Fraction %d/%d", f.Num, f.Denom)
	case pod.TagFd:
		fd, err := v.Fd()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Fd %d", fd)
	case pod.TagPointer:
		p, err := v.Pointer()
		if err != nil {
			return err
		}
		return d.line(indent, label, "Pointer type=%d 0x%x", p.Type, p.Value)
	case pod.TagArray:
		return d.array(v, indent, label)
	case pod.TagStruct:
		return d.strct(v, indent, label)
	case pod.TagChoice:
		return d.choice(v, indent, label)
	case pod.TagSequence:
		return d.sequence(v, indent, label)
	case pod.TagPod:
		inner, err := v.Pod()
		if err != nil {
			return err
		}
		if err := d.line(indent, label, "Pod"); err != nil {
			return err
		}
		return d.node(inner, indent+"  ", "")
	default:
		if v.Tag().IsObjectType() || v.Tag() == pod.TagObject {
			return d.object(v, indent, label)
		}
		return d.line(indent, label, "%s (%d bytes)", v.Tag(), v.Size())
	}
}

func (d *Dumper) array(v pod.View, indent, label string) error {
	a, err := v.AsArray()
	if err != nil {
		return err
	}
	if err := d.line(indent, label, "Array of %s (%d elements)", a.ChildTag(), a.Len()); err != nil {
		return err
	}
	it := a.Elements()
	for it.Next() {
		if err := d.line(indent+"  ", "", "%s", scalar(it.Value())); err != nil {
			return err
		}
	}
	return it.Err()
}

func (d *Dumper) strct(v pod.View, indent, label string) error {
	s, err := v.AsStruct()
	if err != nil {
		return err
	}
	if err := d.line(indent, label, "Struct"); err != nil {
		return err
	}
	it := s.Fields()
	for it.Next() {
		if err := d.node(it.Pod(), indent+"  ", ""); err != nil {
			return err
		}
	}
	return it.Err()
}

func (d *Dumper) choice(v pod.View, indent, label string) error {
	c, err := v.AsChoice()
	if err != nil {
		return err
	}
	if err := d.line(indent, label, "Choice %s of %s", c.Mode(), c.ChildTag()); err != nil {
		return err
	}
	def, err := c.Default()
	if err != nil {
		return err
	}
	if err := d.line(indent+"  ", "default", "%s", scalar(def)); err != nil {
		return err
	}
	it := c.Alternatives()
	for it.Next() {
		if err := d.line(indent+"  ", "alt", "%s", scalar(it.Value())); err != nil {
			return err
		}
	}
	return it.Err()
}

func (d *Dumper) object(v pod.View, indent, label string) error {
	o, err := v.AsObject()
	if err != nil {
		return err
	}
	name := d.namer.ObjectType(o.BodyType())
	if err := d.line(indent, label, "Object %s (id %d)", name, o.ObjectID()); err != nil {
		return err
	}
	it := o.Properties()
	for it.Next() {
		p := it.Prop()
		if err := d.node(p.Value, indent+"  ", d.namer.Key(o.BodyType(), p.Key)); err != nil {
			return err
		}
	}
	return it.Err()
}

func (d *Dumper) sequence(v pod.View, indent, label string) error {
	s, err := v.AsSequence()
	if err != nil {
		return err
	}
	if err := d.line(indent, label, "Sequence (unit %d)", s.Unit()); err != nil {
		return err
	}
	it := s.Controls()
	for it.Next() {
		key := fmt.Sprintf("@%d type=%d", it.Offset(), it.ControlType())
		if err := d.node(it.Value(), indent+"  ", key); err != nil {
			return err
		}
	}
	return it.Err()
}

// scalar formats a raw array or choice element.
func scalar(v pod.Value) string {
	switch x := v.(type) {
	case pod.None:
		return "None"
	case pod.Bool:
		return fmt.Sprintf("Bool %t", bool(x))
	case pod.ID:
		return fmt.Sprintf("Id %d", uint32(x))
	case pod.Int:
		return fmt.Sprintf("Int %d", int32(x))
	case pod.Long:
		return fmt.Sprintf("Long %d", int64(x))
	case pod.Float:
		return fmt.Sprintf("Float %g", float32(x))
	case pod.Double:
		return fmt.Sprintf("Double %g", float64(x))
	case pod.Fd:
		return fmt.Sprintf("Fd %d", int64(x))
	case pod.Rectangle:
		return fmt.Sprintf("Rectangle %dx%d", x.Width, x.Height)
	case pod.Fraction:
		return fmt.Sprintf("Fraction %d/%d", x.Num, x.Denom)
	case pod.Pointer:
		return fmt.Sprintf("Pointer type=%d 0x%x", x.Type, x.Value)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// hexPreview shows up to 16 bytes of a blob plus its total length.
func hexPreview(b []byte) string {
	const max = 16
	if len(b) <= max {
		return fmt.Sprintf("(%d bytes) %x", len(b), b)
	}
	return fmt.Sprintf("(%d bytes) %x...", len(b), b[:max])
}
