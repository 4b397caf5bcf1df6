// Package review implements the flashcard review queue: a shuffled FIFO
// working set where a missed card goes to the back and a correct answer
// removes it. The session is complete when the queue drains.
package review
