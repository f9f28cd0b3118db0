package main

import (
	"os"

	"github.com/conneroisu/leafgen/cmd"
	"github.com/conneroisu/leafgen/examples/blog"
)

func main() {
	if err := cmd.Execute(blog.Views()...); err != nil {
		os.Exit(1)
	}
}
