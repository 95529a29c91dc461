/*
Package datastoredb provides an implementation of github.com/teamaker/teabot/store's StringStorer interface
backed by the Google Cloud Datastore.

Requirements for the Google Cloud Datastore integration:
  - A valid project id with datastore mode enabled
  - Google Cloud Credentials (typically a json credentials file of a service account)

A failing call (other than for a missing entity) reconnects the client and is tried again once.

Example code:

	tallyStorer, err := datastoredb.New(plugins.TeaTallyPluginName, "teabot-prod", option.WithCredentialsFile(credentialsFile))
	if err != nil {
		log.Fatalf("Opening [%s] db failed: %s", plugins.TeaTallyPluginName, err.Error())
	}
	defer tallyStorer.Close()
*/
package datastoredb
