// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package orchestrator ties the assistant's pieces into a single
// conversation turn.
//
// A turn flows through Orchestrator.Respond. The user's message is
// appended to their history and classified by the router, then the
// primary model answers with the tools appropriate for that intent. When
// the model requests a tool, the Toolbox dispatches it and a follow-up
// completion folds the result into the final answer. Off-topic messages
// are refused without a model call.
//
// The orchestrator never surfaces model or tool failures to the caller.
// Anything that goes wrong mid-turn degrades to fixed Spanish copy, and
// the exchange is still recorded.
//
// Usage:
//
//	engine, err := orchestrator.NewOrchestrator(histories, router, chat, toolbox,
//		orchestrator.WithRecorder(recorder))
//	if err != nil {
//		return err
//	}
//	defer engine.Release()
//
//	resp, err := engine.Respond(ctx, &orchestrator.Request{
//		UserID:  "web-1234",
//		Message: "¿Qué colchón me recomendáis para dolor de espalda?",
//	})
package orchestrator
