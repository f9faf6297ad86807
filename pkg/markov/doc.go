/*
Package markov provides a small, in-memory toolkit for training fixed-order
Markov chains over whitespace-tokenized text and sampling new word sequences
("quotes") from them.

A Model maps each Context (the last K words seen) to a FrequencyTable of the
words that followed it. Training walks a line-oriented corpus with a rolling
Context; blank lines reset the rolling Context and lines whose first token
starts with '-' are ignored. Generation starts from an empty Context and draws
words proportionally to their counts until it reaches an unseen Context, a
word containing sentence-ending punctuation, or the length cap.

Models live for a single run. Training must finish before generation starts;
after that a Model is read-only and may be shared by concurrent generators as
long as each uses its own Source.
*/
package markov
