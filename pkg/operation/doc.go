/*
Package operation applies a recipe manifest to a project tree, or reverses it.

	+-------------+
	|   Walker    |  manifest order, one entry at a time
	+------+------+
	       |
	+------+------+------+
	|             |      |
	| Installer   | Remover
	| (copy)      | (delete + prune)
	+-------------+------+

🎯 Purpose:
- Walk manifest entries in order and resolve each target through the project
- Copy bundle files into place, honoring the write policy and executable bits
- Remove installed files again, pruning parent directories left empty

🔄 Install, per resolved file:
1. Ask the write policy; a refusal is silent
2. Create missing parent directories (failure aborts the install)
3. Expand placeholders in the contents and write them
4. Add execute bits when the blob is executable (best-effort)
5. Emit a Created event

🔄 Uninstall, per resolved file:
1. Skip entries whose expanded target is exactly ".git"
2. Missing files are not an error
3. Delete (best-effort), emit a Removed event
4. Remove the parent directory if it is now empty, one level only

⚡ Errors:
Directory creation, file writes, file entries missing from the bundle and context
cancellation propagate. Permission changes, deletions and directory pruning are
best-effort and never reported.

Everything is synchronous. An interrupted run leaves a partially applied tree;
running the same operation again converges because the write policy refuses
existing files and removal ignores missing ones.

🔍 Example:

	op, err := operation.New(operation.Options{
		Project: proj,
		Files:   files.NewOS(),
		Sink:    logger,
	})
	err = op.Configure(ctx, r, false)
*/
package operation
