// Package fuzztests houses Go fuzz harnesses for the lexer. They feed
// arbitrary bytes through both lexer sources and check that every call
// terminates, spans stay in bounds and both sources agree.
//
// Seeds come from the repository testdata and a few hand-picked edge cases.
package fuzztests
