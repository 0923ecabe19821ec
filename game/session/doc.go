// Package session provides the save slot for a game in progress.
//
// A snapshot is the level number, dimensions, player position, static
// field and box overlay of the current game, written in the binary save
// format of the engine package. The undo window is not stored, so a loaded
// game starts with no moves to undo.
//
// FilePersistence keeps one fixed save file. Saves go through a temporary
// file and a rename, so a failed save leaves the previous snapshot intact,
// and a failed load never touches the running game because decoding
// completes before anything is restored.
//
// Usage:
//
//	store, err := session.NewFilePersistence("save.sav")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	snap, _ := state.Snapshot()
//	if err := store.Save(snap); err != nil {
//		log.Println(err)
//	}
//
//	snap, err = store.Load()
//	if err == nil {
//		err = state.Restore(snap)
//	}
package session
