package main

import "github.com/seoworks/indexable/cmd"

func main() {
	cmd.Execute()
}
