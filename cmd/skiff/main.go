// Skiff - Ad-hoc EC2 provisioner
// Up. Report. Done.
package main

func main() {
	Execute()
}
