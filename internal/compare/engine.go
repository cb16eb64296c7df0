package compare

import (
	"sort"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"

	"github.com/pulumi/schema-diff/pkg/schema"
)

// Compare walks both graphs from their roots and returns every structural
// difference in discovery order. Both graphs must be well formed.
func Compare(oldSchema, newSchema *schema.Graph) []Change {
	c := &comparator{
		old:     oldSchema,
		new:     newSchema,
		changes: []Change{},
		active:  mapset.NewThreadUnsafeSet[nodePair](),
	}
	c.compare(oldSchema.Root(), newSchema.Root(), RootPath)
	return c.changes
}

type nodePair struct{ old, new schema.NodeID }

// comparator is owned by a single Compare call.
type comparator struct {
	old, new *schema.Graph
	changes  []Change

	// Pairs on the current recursion path. Meeting one again means the
	// schemas are cyclic here and the subtree is treated as equal.
	active mapset.Set[nodePair]
}

func (c *comparator) record(kind ChangeKind, path, from, to, msg string, a ...any) {
	c.changes = append(c.changes, newChange(kind, path, from, to, msg, a...))
}

func (c *comparator) compare(oldID, newID schema.NodeID, path string) {
	pair := nodePair{oldID, newID}
	if c.active.Contains(pair) {
		return
	}
	c.active.Add(pair)
	defer c.active.Remove(pair)

	oldType, newType := c.old.TypeName(oldID), c.new.TypeName(newID)
	if oldType != newType {
		c.record(TypeChanged, path, oldType, newType, "type changed from %q to %q", oldType, newType)
		return
	}

	switch oldNode := c.old.Node(oldID).(type) {
	case schema.Object:
		c.compareObjects(oldNode, c.new.Node(newID).(schema.Object), path)
	case schema.Array:
		c.compare(oldNode.Element, c.new.Node(newID).(schema.Array).Element, elementPath(path))
	case schema.Union:
		newNode := c.new.Node(newID).(schema.Union)
		c.compareCounts(len(oldNode.Variants), len(newNode.Variants), path,
			UnionVariantRemoved, "union variants removed (%d -> %d)",
			UnionVariantAdded, "union variants added (%d -> %d)")
	case schema.Enum:
		c.compareEnums(oldNode, c.new.Node(newID).(schema.Enum), path)
	case schema.Primitive:
		newNode := c.new.Node(newID).(schema.Primitive)
		// Constraints are compared by count only: more of them means the
		// type was tightened, fewer means it was relaxed.
		c.compareCounts(len(oldNode.Constraints), len(newNode.Constraints), path,
			ConstraintRemoved, "constraints relaxed (%d -> %d)",
			ConstraintAdded, "constraints tightened (%d -> %d)")
	case schema.Optional:
		c.compare(oldNode.Inner, c.new.Node(newID).(schema.Optional).Inner, path)
	case schema.Nullable:
		c.compare(oldNode.Inner, c.new.Node(newID).(schema.Nullable).Inner, path)
	default:
		contract.Failf("unexpected schema node %T at %s", oldNode, path)
	}
}

func (c *comparator) compareObjects(oldObj, newObj schema.Object, path string) {
	oldFields, newFields := fieldIndex(oldObj), fieldIndex(newObj)
	oldNames := mapset.NewThreadUnsafeSetFromMapKeys(oldFields)
	newNames := mapset.NewThreadUnsafeSetFromMapKeys(newFields)

	for _, name := range sorted(oldNames.Difference(newNames)) {
		c.record(FieldRemoved, fieldPath(path, name), c.old.TypeName(oldFields[name]), "",
			"field %q was removed", name)
	}
	for _, name := range sorted(newNames.Difference(oldNames)) {
		id := newFields[name]
		typ := c.new.TypeName(id)
		switch c.new.Node(id).(type) {
		case schema.Optional, schema.Nullable:
			c.record(FieldAdded, fieldPath(path, name), "", typ, "optional field %q was added", name)
		default:
			c.record(RequiredFieldAdded, fieldPath(path, name), "", typ, "required field %q was added", name)
		}
	}
	for _, name := range sorted(oldNames.Intersect(newNames)) {
		c.compare(oldFields[name], newFields[name], fieldPath(path, name))
	}
}

func (c *comparator) compareEnums(oldEnum, newEnum schema.Enum, path string) {
	oldValues := mapset.NewThreadUnsafeSet(oldEnum.Values...)
	newValues := mapset.NewThreadUnsafeSet(newEnum.Values...)

	for _, v := range sorted(oldValues.Difference(newValues)) {
		c.record(EnumValueRemoved, path, v, "", "enum value %q was removed", v)
	}
	for _, v := range sorted(newValues.Difference(oldValues)) {
		c.record(EnumValueAdded, path, "", v, "enum value %q was added", v)
	}
}

func (c *comparator) compareCounts(oldCount, newCount int, path string,
	fewer ChangeKind, fewerMsg string, more ChangeKind, moreMsg string,
) {
	from, to := strconv.Itoa(oldCount), strconv.Itoa(newCount)
	switch {
	case newCount < oldCount:
		c.record(fewer, path, from, to, fewerMsg, oldCount, newCount)
	case newCount > oldCount:
		c.record(more, path, from, to, moreMsg, oldCount, newCount)
	}
}

func fieldIndex(obj schema.Object) map[string]schema.NodeID {
	m := make(map[string]schema.NodeID, len(obj.Fields))
	for _, f := range obj.Fields {
		m[f.Name] = f.Node
	}
	return m
}

func sorted(s mapset.Set[string]) []string {
	xs := s.ToSlice()
	sort.Strings(xs)
	return xs
}
