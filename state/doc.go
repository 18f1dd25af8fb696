// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the runtime key-value state.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ bulk write ] -> [ kv store ]
//	         |
//	   [ lru cache ]
//	         |
//	   [ kv store ]
//
// Every dispatched call runs on top of a checkpoint, and a failed call reverts
// to it so that no partial writes survive.
package state
