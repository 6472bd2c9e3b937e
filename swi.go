// Package swi provides supervised wrapper induction for semi-structured
// pages. Given a few labeled example pages it learns, per field, an
// extraction rule ("wrapper") that locates the same field on other pages
// rendered from the same template.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. The induction algorithms live in induct/ and the
// implementations of external collaborators live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, trafilatura/).
package swi
