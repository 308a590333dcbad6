// Command apictl is the operator CLI for the items API.
package main

func main() {
	Execute()
}
