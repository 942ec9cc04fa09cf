/*
Package recipe holds the data a recipe ships: its files and the manifest that maps
them onto a project tree.

	+-------------+        +--------------+
	|  Manifest   |  --->  | SourceBundle |
	| (ordered)   |        | key -> blob  |
	+-------------+        +--------------+

🎯 Purpose:
- Model manifest entries as an explicit FileEntry | DirectoryEntry variant
- Select the bundle files an entry refers to (literal prefix match for directories)
- Load a bundle from a recipe directory on disk

A source pattern ending in "/" is a directory mapping. Everything else names exactly
one bundle key. Manifests keep insertion order; bundles have none.

🔍 Example:

	m := recipe.NewManifest(
		recipe.FileEntry("config/packages/foo.yaml", "%CONFIG_DIR%/packages/%NAME%.yaml"),
		recipe.DirectoryEntry("templates/", "app/Resources/%BUNDLE%/"),
	)
	files, err := recipe.LoadBundle(ctx, afero.NewOsFs(), "./recipes/foo", nil)
*/
package recipe
