package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

type nodeKind byte

const (
	leafNode nodeKind = iota
	internalNode
)

// node is one entry of the Tree's arena.  Leaves carry a symbol, internal
// nodes carry the arena indices of their children.
type node struct {
	weight uint64
	kind   nodeKind
	symbol Symbol
	left   int32
	right  int32
}

func (n *node) isLeaf() bool {
	return n.kind == leafNode
}

const noNode = int32(-1)

// Tree is a Huffman tree built from a FrequencyTable.  Nodes live in a
// single arena and refer to each other by index; the tree is never mutated
// once NewTree returns.
//
// The zero Tree is empty.  The tree for a single distinct symbol consists
// of a lone leaf.
type Tree struct {
	nodes []node
	root  int32
}

// NewTree builds the Huffman tree for freq.
//
// One leaf is created per symbol with a non-zero count, in ascending symbol
// order.  The two lightest nodes are then merged repeatedly, the first one
// popped becoming the left child.  Nodes of equal weight are ordered by
// creation, so the same table always yields the same tree.
func NewTree(freq FrequencyTable) *Tree {
	distinct := freq.Distinct()
	t := &Tree{root: noNode}
	if distinct == 0 {
		return t
	}

	t.nodes = make([]node, 0, 2*distinct-1)
	for symbol, count := range freq {
		if count != 0 {
			t.nodes = append(t.nodes, node{
				weight: count,
				kind:   leafNode,
				symbol: Symbol(symbol),
				left:   noNode,
				right:  noNode,
			})
		}
	}

	h := nodeHeap{tree: t, list: make([]int32, distinct)}
	for index := range h.list {
		h.list[index] = int32(index)
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		next := int32(len(t.nodes))
		t.nodes = append(t.nodes, node{
			weight: addSaturating(t.nodes[a].weight, t.nodes[b].weight),
			kind:   internalNode,
			left:   a,
			right:  b,
		})
		heap.Push(&h, next)
	}

	assert.Assertf(h.Len() == 1, "heap has %d entries after merging, expected 1", h.Len())
	t.root = heap.Pop(&h).(int32)
	return t
}

// Empty returns true iff the tree has no leaves.
func (t *Tree) Empty() bool {
	return t == nil || t.root == noNode
}

// Len returns the number of leaves, i.e. the number of distinct symbols.
func (t *Tree) Len() int {
	if t.Empty() {
		return 0
	}
	return (len(t.nodes) + 1) / 2
}

// Weight returns the weight of the root, i.e. the total count.
func (t *Tree) Weight() uint64 {
	if t.Empty() {
		return 0
	}
	return t.nodes[t.root].weight
}

// String returns a compact rendering of the tree's shape, e.g.
// "(5 ((2 3) ((0 1) 4)))".
func (t *Tree) String() string {
	if t.Empty() {
		return "()"
	}
	var buf strings.Builder
	t.writeShape(&buf, t.root)
	return buf.String()
}

func (t *Tree) writeShape(buf *strings.Builder, index int32) {
	n := &t.nodes[index]
	if n.isLeaf() {
		buf.WriteString(strconv.Itoa(int(n.symbol)))
		return
	}
	buf.WriteByte('(')
	t.writeShape(buf, n.left)
	buf.WriteByte(' ')
	t.writeShape(buf, n.right)
	buf.WriteByte(')')
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer, one node per line, indented by depth.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	t.walk(func(index int32, depth int, path Code) {
		n := &t.nodes[index]
		buf.WriteString(strings.Repeat("\t", depth+1))
		if n.isLeaf() {
			fmt.Fprintf(&buf, "Leaf(%d) weight=%d code=%s\n", n.symbol, n.weight, path)
		} else {
			fmt.Fprintf(&buf, "Internal weight=%d\n", n.weight)
		}
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// walk visits every node in depth-first, left-to-right order.  path is the
// sequence of edges from the root; it stops growing past MaxCodeSize.
func (t *Tree) walk(fn func(index int32, depth int, path Code)) {
	if t.Empty() {
		return
	}

	// stackItem.x tracks progress through a node:
	//   x=0 → We just arrived at this node for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		index int32
		path  Code
		depth int
		x     byte
	}

	stack := make([]stackItem, 0, 16)
	push := func(index int32, depth int, path Code) {
		fn(index, depth, path)
		if !t.nodes[index].isLeaf() {
			stack = append(stack, stackItem{index: index, path: path, depth: depth})
		}
	}
	extend := func(path Code, bit bool) Code {
		if path.Size >= MaxCodeSize {
			path.Size++
			return path
		}
		return path.Append(bit)
	}

	push(t.root, 0, Code{})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		n := &t.nodes[top.index]
		switch x {
		case 0:
			push(n.left, top.depth+1, extend(top.path, false))
		case 1:
			push(n.right, top.depth+1, extend(top.path, true))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	list []int32
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	wa, wb := h.tree.nodes[a].weight, h.tree.nodes[b].weight
	if wa != wb {
		return wa < wb
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
