/*
Package corpus loads the text that markov models are trained on.

A Manifest (YAML) names one or more chains and, for each, the sources whose
text feeds it: single files, glob patterns and SQLite queries. BuildChains
trains and finalizes one markov.Model per chain. Every file and every
database row is ingested as a separate corpus, so context windows never
span two of them.
*/
package corpus
