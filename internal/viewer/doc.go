// Package viewer is the navigation and data-synchronisation state machine of
// the board viewer.
//
// A location fragment is resolved into a Route, a Controller loads the data
// for that route through a Source and commits it into a State, and a Session
// ties one Controller to the ambient Backdrop of a single browsing context.
//
// Every navigation is tagged with a generation number. Only the load carrying
// the latest generation may commit; older loads run to completion and their
// results are dropped. Query failures never surface as errors: they are
// logged and the affected part of the view is left empty.
package viewer
