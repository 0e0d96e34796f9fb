package main

import "weeklytask/cmd/wt/root"

func main() {
	root.Execute()
}
