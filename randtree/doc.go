// Package randtree implements a weighted random-sampling binary tree (C10):
// given a fixed set of non-negative integer leaf weights, GetLeaf draws a
// leaf index with probability proportional to its current weight in
// O(log n), and DecreaseLeaf lowers one leaf's weight by one, also in
// O(log n). Generators use it to sample a node weighted by remaining degree
// without a linear rescan after every pick.
//
// Grounded in RandomIntervalTree.h: each internal node stores the combined
// weight of its left subtree only; a draw walks root to leaf deciding
// left/right by comparing the drawn value against that stored sum, and a
// decrement walks leaf to root undoing the same comparison.
package randtree
