package main

import "fmt"

func formatDeviceLine(path, name string, virtual, pointer bool) string {
	virtualTag := "physical"
	if virtual {
		virtualTag = "virtual"
	}
	pointerTag := "non-pointer"
	if pointer {
		pointerTag = "pointer"
	}
	return fmt.Sprintf("%s: %s [%s, %s]", path, name, virtualTag, pointerTag)
}
