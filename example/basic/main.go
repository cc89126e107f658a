// Package main demonstrates basic usage of the readline library.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/karasu-sh/readline"
)

func main() {
	l, err := readline.New(readline.WithPrompt(readline.StaticPrompt(">>> ")))
	if err != nil {
		log.Fatal(err)
	}
	defer l.Close()

	fmt.Println("Basic Readline Example")
	fmt.Println("Type 'exit' to quit, Ctrl+D on an empty line also exits")
	fmt.Println()

	for {
		result, err := l.ReadLine()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupted) {
				continue
			}
			if errors.Is(err, readline.ErrEOF) {
				fmt.Println("\nGoodbye!")
				break
			}
			log.Printf("Error: %v", err)
			continue
		}

		if result == "exit" {
			fmt.Println("Goodbye!")
			break
		}
		fmt.Printf("You typed: %s\n", result)
	}
}
