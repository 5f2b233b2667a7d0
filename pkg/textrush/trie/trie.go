// Package trie implements the token-keyed keyword trie.
//
// Edges are word tokens, never characters. A node is terminal when it
// carries a clean name; a path may continue past a terminal node or end
// at a non-terminal one. Removal only clears the clean name, so branches
// are never pruned (see Compact on the processor for rebuilding).
package trie

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/cognicore/textrush/pkg/textrush/segment"
)

// Node is a trie node keyed by its path of tokens from the root.
type Node struct {
	children  map[string]*Node
	label     string // token text as first inserted
	cleanName string
	terminal  bool
}

// CleanName returns the node's replacement and whether the node is terminal.
func (n *Node) CleanName() (string, bool) {
	if !n.terminal {
		return "", false
	}
	if n.cleanName == "" {
		panic(fmt.Sprintf("trie: terminal node %q has no clean name", n.label))
	}
	return n.cleanName, true
}

// Trie is a tree of Nodes under one key Policy.
type Trie struct {
	root   *Node
	policy Policy
	nodes  int
}

// New creates an empty trie. A nil policy means Exact.
func New(policy Policy) *Trie {
	if policy == nil {
		policy = Exact{}
	}
	return &Trie{root: &Node{}, policy: policy, nodes: 1}
}

// Policy returns the key policy fixed at construction.
func (t *Trie) Policy() Policy { return t.policy }

// Root returns the root node.
func (t *Trie) Root() *Node { return t.root }

// Nodes returns the number of allocated nodes, root included.
func (t *Trie) Nodes() int { return t.nodes }

// Child returns the child of n reached by token, or nil.
func (t *Trie) Child(n *Node, token string) *Node {
	if n.children == nil {
		return nil
	}
	return n.children[t.policy.Key(token)]
}

// Insert adds the token path and sets its clean name. It reports whether
// the path was not already terminal. An existing clean name is overwritten.
func (t *Trie) Insert(tokens []string, cleanName string) bool {
	if cleanName == "" {
		panic("trie: insert with empty clean name")
	}
	node := t.root
	for _, tok := range tokens {
		key := t.policy.IndexKey(tok)
		child, ok := node.children[key]
		if !ok {
			if node.children == nil {
				node.children = make(map[string]*Node)
			}
			child = &Node{label: tok}
			node.children[key] = child
			t.nodes++
		}
		node = child
	}
	added := !node.terminal
	node.terminal = true
	node.cleanName = cleanName
	return added
}

// Remove clears the clean name at the end of the token path. It reports
// whether a terminal node was cleared. Missing paths are a no-op.
func (t *Trie) Remove(tokens []string) bool {
	node := t.root
	for _, tok := range tokens {
		node = t.Child(node, tok)
		if node == nil {
			return false
		}
	}
	if !node.terminal {
		return false
	}
	node.terminal = false
	node.cleanName = ""
	return true
}

// Lookup returns the clean name stored for the exact token path.
func (t *Trie) Lookup(tokens []string) (string, bool) {
	node := t.root
	for _, tok := range tokens {
		node = t.Child(node, tok)
		if node == nil {
			return "", false
		}
	}
	return node.CleanName()
}

// Walk visits every terminal node depth-first, children in key order,
// passing the reconstructed phrase and its clean name. Returning false
// from fn stops the walk.
func (t *Trie) Walk(fn func(phrase, cleanName string) bool) {
	var path []string
	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		if clean, ok := n.CleanName(); ok {
			if !fn(strings.Join(path, ""), clean) {
				return false
			}
		}
		keys := make([]string, 0, len(n.children))
		for k := range n.children {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := n.children[k]
			path = append(path, child.label)
			if !visit(child) {
				return false
			}
			path = path[:len(path)-1]
		}
		return true
	}
	visit(t.root)
}

// IsValidKeyword reports whether word carries matchable content: it must
// be non-empty and contain at least one token that is not made only of
// whitespace and dots.
func IsValidKeyword(word string) bool {
	if word == "" {
		return false
	}
	valid := false
	segment.Each(word, func(tok segment.Token) bool {
		for _, r := range tok.Text {
			if !unicode.IsSpace(r) && r != '.' {
				valid = true
				return false
			}
		}
		return true
	})
	return valid
}
