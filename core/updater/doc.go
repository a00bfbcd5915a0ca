// Package updater runs one configuration update end to end.
//
// Service.Run is the boundary between the command line and the reconciler:
//
//  1. Load the current and incoming documents through storage.Client and document.Parse.
//  2. Verify the current document is writable before any merge work.
//  3. Resolve the policy from the force/replace switches.
//  4. Reconcile and build a plan of the changes.
//  5. Serialize the merge result and write it back to the current path.
//
// A dry run stops after step 4. Every failure is terminal and leaves the current
// document untouched.
package updater
