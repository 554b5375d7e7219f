// Command pqsort generates benchmark datasets and times the sequential and
// parallel quicksorts against them.
package main

func main() {
	Execute()
}
