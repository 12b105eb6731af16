// Package statblock extracts structured creature stat blocks from
// Archives of Nethys rules pages.
//
// Pages are flat runs of sibling nodes with only weak structural cues.
// Extraction segments the container into sections by marker tags, then
// pulls typed fields out of each section with selector and sibling-walk
// strategies, and finally assembles them into a Record.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, bloom/).
package statblock
