/*
Package templating renders generated quotes through a text/template format.

A TemplateManager owns one compiled output format and a function map that
can wrap, decorate and number quotes, or draw fresh quotes from a trained
markov.Model while rendering. The format can be swapped at runtime with
SetConfig followed by Refresh.
*/
package templating
