// Package labels lays parcel labels out on a fixed page grid and renders
// the sheet as a PDF.
//
// All geometry is in millimetres. Margins are not configured: the space
// left over on each axis is split evenly between the outer margins and
// the gaps between labels. Labels fill the page row by row.
//
// Each label shows the description on the upper line and the serial
// number with the weight on the lower line:
//
//	+--------------------------+
//	| Description              |
//	| REW-007              12  |
//	+--------------------------+
package labels
