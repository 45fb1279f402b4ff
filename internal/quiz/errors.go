package quiz

import "errors"

var (
	// ErrEmptyCorpus is returned when there are no valid words to quiz on
	ErrEmptyCorpus = errors.New("word list is empty")
	// ErrNoMatchingWords is returned when the filter leaves no words for a session
	ErrNoMatchingWords = errors.New("no words match the current filter")
	// ErrNothingToReview is returned when a review is requested without missed words
	ErrNothingToReview = errors.New("nothing to review yet")
	// ErrNoSession is returned when an operation needs an active session
	ErrNoSession = errors.New("no active session")
	// ErrSessionCompleted is returned when the session has no questions left
	ErrSessionCompleted = errors.New("session is completed")
	// ErrNotCurrentQuestion is returned when an answer is submitted for a word other than the current one
	ErrNotCurrentQuestion = errors.New("word is not the current question")
	// ErrNotAnswered is returned when advancing past a question that has not been judged
	ErrNotAnswered = errors.New("current question has not been answered")
	// ErrWrongStyle is returned when the answer kind does not match the session style
	ErrWrongStyle = errors.New("answer does not match the question style")
	// ErrInvalidChoice is returned for an option index outside the question's options
	ErrInvalidChoice = errors.New("invalid choice")
)
