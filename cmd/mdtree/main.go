// Command mdtree reads a graph file and prints its modular-decomposition
// tree as JSON. It is the adapter spec.md §1 describes: file I/O, JSON
// serialization, CLI flags, and logging all live here, never in the
// core packages.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/cem-okulmus/mdtree/decomp"
	"github.com/cem-okulmus/mdtree/internal/parser"
	"github.com/cem-okulmus/mdtree/tree"
)

func logActive(b bool) {
	log.SetFlags(0)
	if b {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(ioutil.Discard)
	}
}

func check(e error) {
	if e != nil {
		log.Fatalln(e)
	}
}

// treeJSON is the adapter-facing output schema named in spec.md §6.
type treeJSON struct {
	Type     string     `json:"type"`
	Vertex   *int       `json:"vertex,omitempty"`
	Children []treeJSON `json:"children,omitempty"`
}

func toJSON(n *tree.Node) treeJSON {
	if n.Type == tree.Normal {
		v := n.Vertex
		return treeJSON{Type: n.Type.String(), Vertex: &v}
	}
	out := treeJSON{Type: n.Type.String()}
	for _, c := range n.Children {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}

func main() {
	logActive(false)

	graphPath := flag.String("graph", "", "path to a graph file (first line: vertex count; following lines: \"u v\" edges)")
	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Parse()

	if *verbose {
		logActive(true)
	}

	if *graphPath == "" {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	dat, err := ioutil.ReadFile(*graphPath)
	check(err)

	log.Println("parsing", *graphPath)
	g, err := parser.Parse(string(dat))
	check(err)

	log.Printf("computing modular decomposition of a %d-vertex graph\n", g.Size())
	root, err := decomp.Compute(context.Background(), g)
	check(err)

	var out treeJSON
	if root != nil {
		out = toJSON(root)
	}

	api := jsoniter.ConfigCompatibleWithStandardLibrary
	enc := api.NewEncoder(os.Stdout)
	check(enc.Encode(out))
}
