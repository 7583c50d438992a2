/*
Package markov builds word-level Markov chains from text corpora and walks
them to produce pseudo-random prose.

A Model maps a context (the N most recent tokens, two by default) to a
SuccessorTable counting every token observed right after it. Contexts that
directly follow a sentence-terminal token are remembered as start contexts,
so generated sentences begin where real sentences began.

A Model is built once: ingest one or more corpora with Ingest or Train, then
call Finalize (or use Build / BuildFromReaders, which do both). A finalized
Model is read-only and may be shared between goroutines; each caller
supplies its own random source, so output is reproducible for a fixed seed.
*/
package markov
