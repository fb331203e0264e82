// Package search implements the expectiminimax game-tree search: the AlphaBeta engine, its
// fail-soft interval pruning over the bonus/no-bonus chance node, the Zobrist-keyed
// transposition table, and the deadline-based iterative deepening driver.
package search
