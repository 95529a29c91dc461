/*
Package inmemorydb provides an implementation of github.com/teamaker/teabot/store's StringStorer interface
as an in-memory data store relying on a wrapped StringStorer for actual persistence.

Plugins may query their StringStorer on every message so keeping content in memory shields the persistent
storer (especially a remote one like the Google Cloud Datastore) from most calls. Reads never reach the
persistent storer after the initial load.

Example code:

	persistentStorer, err := store.NewLevelDB(plugins.TeaTallyPluginName, "~/teabot")
	if err != nil {
		log.Fatalf("Opening [%s] db failed: %s", plugins.TeaTallyPluginName, err.Error())
	}

	tallyStorer, err := inmemorydb.New(persistentStorer)
	if err != nil {
		log.Fatalf("Creating in-memory db wrapper failed: %s", err.Error())
	}
	defer tallyStorer.Close()
*/
package inmemorydb
