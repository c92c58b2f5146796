/*
Package markov builds n-gram Markov chains from tokenized text and walks them
to produce new pseudo-random text.

A Chain maps every key of Order consecutive tokens to the list of tokens that
followed it in the source. Successor lists keep duplicates, so sampling
uniformly from a list reproduces the observed frequencies. Chains are built
once and never modified afterwards.

Generation starts at a randomly chosen start key (a key whose first token
begins with an upper-case letter) and keeps appending successors until the
trailing window is no longer a key in the chain.
*/
package markov
