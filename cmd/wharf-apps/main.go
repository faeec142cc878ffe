package main

import (
	"fmt"

	wharfapps "github.com/iver-wharf/wharf-apps"
)

func main() {
	version, err := wharfapps.GetVersion()
	if err != nil {
		fmt.Println("Failed to load version:", err)
	}
	execute(version)
}
