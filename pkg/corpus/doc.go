/*
Package corpus supplies source text to the markov package.

A Loader reads files or readers into the single normalized string the chain
builder expects: every line has its trailing whitespace removed and is
followed by one space. A Store keeps named corpora in a SQLite database so
they can be reused across runs; only source text is stored, chains are always
rebuilt in memory.
*/
package corpus
