// Command hxui runs the component showcase.
package main

func main() {
	Execute()
}
